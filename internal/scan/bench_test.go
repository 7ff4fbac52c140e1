package scan

import (
	"context"
	"strings"
	"testing"
)

func BenchmarkScanReader(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 1000; i++ {
		switch i % 10 {
		case 0:
			sb.WriteString(summaryLine)
		case 5:
			sb.WriteString(otherSession)
		default:
			sb.WriteString(userLine)
		}
		sb.WriteByte('\n')
	}
	content := sb.String()
	ctx := context.Background()

	b.ReportAllocs()
	b.SetBytes(int64(len(content)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ScanReader(ctx, "bench.jsonl", strings.NewReader(content), Options{}); err != nil {
			b.Fatal(err)
		}
	}
}
