package ranking

// PointsSystem maps the number of teams of an event to the points earned per position.
var PointsSystem = map[int][]int{
	4:  {6, 4, 3, 2},
	6:  {8, 6, 4, 3, 2, 1},
	8:  {11, 9, 7, 6, 4, 3, 2, 1},
	10: {14, 12, 10, 9, 7, 6, 5, 4, 2, 1},
	12: {16, 14, 12, 11, 9, 8, 7, 6, 4, 3, 2, 1},
	14: {19, 17, 15, 14, 12, 11, 10, 9, 7, 6, 5, 4, 2, 1},
	16: {21, 19, 17, 16, 14, 13, 12, 11, 9, 8, 7, 6, 4, 3, 2, 1},
}

// PointsFor returns the points for finishing at position in a field of teams.
// Unknown field sizes and out of range positions score 0.
func PointsFor(teams, position int) int {
	table, ok := PointsSystem[teams]
	if !ok || position < 1 || position > len(table) {
		return 0
	}
	return table[position-1]
}
