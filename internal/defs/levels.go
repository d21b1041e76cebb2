package defs

// Levels are ASCII layouts understood by tilemap.Parse:
// '.' floor, '#' wall, '~' rough ground, 'S' spawn point, 'P' player start.
var Levels = map[string][]string{
	"town": {
		"########################################",
		"#S.....#..........~~~~..........#.....S#",
		"#......#..........~~~~..........#......#",
		"#......#....####..~~~~..####....#......#",
		"#...........#..........#...............#",
		"#...........#..........#...............#",
		"####....#####....##....#####....########",
		"#..............................~~~.....#",
		"#.....~~~.........P.............~~.....#",
		"#.....~~~..........................#####",
		"#.........####........####.............#",
		"######....#..#........#..#.....#.......#",
		"#.........#..#........#..#.....#.......#",
		"#.........####........####.....#.......#",
		"#......................................#",
		"#S....#######......~~~......#######...S#",
		"########################################",
	},
	"arena": {
		"####################",
		"#S................S#",
		"#..................#",
		"#....##......##....#",
		"#..................#",
		"#........P.........#",
		"#..................#",
		"#....##......##....#",
		"#..................#",
		"#S................S#",
		"####################",
	},
}
