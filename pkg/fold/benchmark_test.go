package fold_test

import (
	"fmt"
	"testing"

	"github.com/yaklabco/gofold/pkg/fold"
	"github.com/yaklabco/gofold/pkg/marker"
)

// benchLines builds a document of n lines with a region every ten lines.
func benchLines(n int) fold.Lines {
	lines := make(fold.Lines, n)
	for i := range lines {
		switch i % 10 {
		case 0:
			lines[i] = "// #region block"
		case 9:
			lines[i] = "// #endregion"
		default:
			lines[i] = fmt.Sprintf("x := compute(%d)", i)
		}
	}
	return lines
}

func BenchmarkScanLiteral(b *testing.B) {
	markers := marker.Compile(
		marker.Spec{Begin: "#region", End: "#endregion"},
		marker.Spec{Begin: "{{{", End: "}}}"},
	)
	doc := benchLines(10000)

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		fold.Scan(markers, doc)
	}
}

func BenchmarkScanRegex(b *testing.B) {
	markers := marker.Compile(marker.Spec{
		BeginRegex: `^\s*//\s*#region\b`,
		EndRegex:   `^\s*//\s*#endregion\b`,
	})
	doc := benchLines(10000)

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		fold.Scan(markers, doc)
	}
}
