package cage

// Шаблоны клеток. Глиф -> имя вида; '.' и ' ' - пустой пол.
// Раскладки читаются сверху вниз, но ось Y мира растет вверх,
// парсер переворачивает строки.

// GlyphSpecies - маппинг глифов шаблона на виды контента.
var GlyphSpecies = map[byte]string{
	'#': "wall",
	'%': "weak_wall",
	'@': "player",
	'H': "hunter",
	'K': "shrike",
	'L': "sluggard",
	'S': "spawner",
	'G': "ghost",
	'C': "crate",
	'D': "airlock",
	'^': "trap",
	'A': "abazon",
}

// HunterCage - классическая арена: охотники по периметру, игрок в центре.
var HunterCage = Template{
	Name: "hunter_cage",
	Rows: []string{
		"##################",
		"#H.H.H.H.H.H.H.H.#",
		"#...............H#",
		"#H...............#",
		"#...............H#",
		"#H...............#",
		"#...............H#",
		"#H...............#",
		"#........@......H#",
		"#H...............#",
		"#...............H#",
		"#H...............#",
		"#...............H#",
		"#H...............#",
		"#...............H#",
		"#H...............#",
		"#.H.H.H.H.H.H.H.H#",
		"##################",
	},
}

// WorkshopCage - мастерская: ящики, шлюзы, пара призывателей.
var WorkshopCage = Template{
	Name: "workshop_cage",
	Rows: []string{
		"##################",
		"#S......%%......S#",
		"#....C..%%..C....#",
		"#.......DD.......#",
		"#..C....%%....C..#",
		"#.......%%.......#",
		"#%%%D%%%%%%%%D%%%#",
		"#.......^........#",
		"#...G...@....G...#",
		"#........^.......#",
		"#%%%D%%%%%%%%D%%%#",
		"#.......%%.......#",
		"#..C....%%....C..#",
		"#.......DD.......#",
		"#....C..%%..C....#",
		"#S......%%......S#",
		"##################",
	},
}

// MenagerieCage - смешанный зверинец для длинных прогонов.
var MenagerieCage = Template{
	Name: "menagerie_cage",
	Rows: []string{
		"##################",
		"#K..............K#",
		"#....L......L....#",
		"#..%%%%%..%%%%%..#",
		"#..%...D..D...%..#",
		"#..%.A.%..%.A.%..#",
		"#..%%%%%..%%%%%..#",
		"#.......CC.......#",
		"#...G...@....G...#",
		"#.......CC.......#",
		"#..%%%%%..%%%%%..#",
		"#..%.A.%..%.A.%..#",
		"#..%...D..D...%..#",
		"#..%%%%%..%%%%%..#",
		"#....L......L....#",
		"#K..............K#",
		"##################",
	},
}

// Catalog - все шаблоны в порядке выбора.
var Catalog = []Template{HunterCage, WorkshopCage, MenagerieCage}
