package sink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/shapewordle/pkg/wordle"
	"github.com/matzehuels/shapewordle/pkg/wordle/sink"
)

func ExampleRenderSVG() {
	l := wordle.Layout{
		Width:  200,
		Height: 100,
		Keywords: []wordle.Record{
			{Name: "shape", FontSize: 20, Color: "#39a6dd", Alpha: 1, TransX: 100, TransY: 50, FillX: -30, FillY: 7},
		},
	}

	svg := string(sink.RenderSVG(l))
	for _, line := range strings.Split(svg, "\n") {
		if strings.Contains(line, "<text") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// <text transform="translate(100.00 50.00) rotate(0.00)" x="-30.00" y="7.00" font-size="20.00" font-family="sans-serif" fill="#39a6dd">shape</text>
}
