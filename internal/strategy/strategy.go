// Package strategy holds the fixed basic-strategy reference chart shown
// next to the calculator. It is display data only; nothing computes from it.
package strategy

// Move is a chart cell
type Move string

const (
	Stand  Move = "Stand"
	Hit    Move = "Hit"
	Double Move = "Double"
)

// Row is one line of the chart: what to do with a total against a weak
// (2-6) or strong (7-A) dealer upcard.
type Row struct {
	Total    string `json:"total"`
	VsWeak   Move   `json:"vsDealer2to6"`
	VsStrong Move   `json:"vsDealer7toA"`
}

// Headers are the column titles in display order
var Headers = []string{"Player Total", "Dealer 2-6", "Dealer 7-A"}

var chart = [...]Row{
	{Total: "Hard 17+", VsWeak: Stand, VsStrong: Stand},
	{Total: "Hard 13-16", VsWeak: Stand, VsStrong: Hit},
	{Total: "Hard 12", VsWeak: Stand, VsStrong: Hit},
	{Total: "Hard 11", VsWeak: Double, VsStrong: Hit},
	{Total: "Hard 10", VsWeak: Double, VsStrong: Hit},
	{Total: "Hard 9", VsWeak: Hit, VsStrong: Hit},
	{Total: "Soft 18", VsWeak: Stand, VsStrong: Hit},
	{Total: "Soft 17", VsWeak: Hit, VsStrong: Hit},
}

// Rows returns a copy of the chart in display order
func Rows() []Row {
	out := make([]Row, len(chart))
	copy(out, chart[:])
	return out
}

// Cells returns the chart as string cells, one slice per row, for table
// renderers.
func Cells() [][]string {
	cells := make([][]string, 0, len(chart))
	for _, r := range chart {
		cells = append(cells, []string{r.Total, string(r.VsWeak), string(r.VsStrong)})
	}
	return cells
}
