package metrics

import (
	"strconv"
	"strings"

	"QNNLogParser/pkg/logparse"
)

// Bandwidth holds the byte counters from the DDR bandwidth summary block.
// An absent block yields all zeros, not an error.
type Bandwidth struct {
	SpillBytes      uint64
	FillBytes       uint64
	WriteTotalBytes uint64
	ReadTotalBytes  uint64
}

// ExtractBandwidth locates the block bounded by the header line and the next
// blank line, then pulls the four counters out via key=value matching.
// Missing keys resolve to 0 for that counter only.
func ExtractBandwidth(lines []string, header string) (Bandwidth, []logparse.Diagnostic) {
	var bw Bandwidth
	if header == "" {
		return bw, nil
	}

	blockStart := -1
	for i, line := range lines {
		if strings.Contains(line, header) {
			blockStart = i + 1
			break
		}
	}
	if blockStart < 0 {
		return bw, []logparse.Diagnostic{{
			Stage: "bandwidth", Marker: header, Message: "summary block not found; counters set to 0",
		}}
	}

	var diags []logparse.Diagnostic
	block := lines[blockStart:]
	for i, line := range block {
		if strings.TrimSpace(line) == "" {
			block = block[:i]
			break
		}
	}

	bw.SpillBytes = blockCounter(block, "spill_bytes", &diags)
	bw.FillBytes = blockCounter(block, "fill_bytes", &diags)
	bw.WriteTotalBytes = blockCounter(block, "write_total_bytes", &diags)
	bw.ReadTotalBytes = blockCounter(block, "read_total_bytes", &diags)
	return bw, diags
}

func blockCounter(block []string, key string, diags *[]logparse.Diagnostic) uint64 {
	prefix := key + "="
	for _, line := range block {
		idx := strings.Index(line, prefix)
		if idx < 0 {
			continue
		}
		val := line[idx+len(prefix):]
		if end := strings.IndexAny(val, " \t"); end >= 0 {
			val = val[:end]
		}
		n, err := strconv.ParseUint(logparse.CleanNumericToken(val), 10, 64)
		if err != nil {
			break
		}
		return n
	}
	*diags = append(*diags, logparse.Diagnostic{
		Stage: "bandwidth", Marker: key, Message: "counter missing or unparseable in summary block; set to 0",
	})
	return 0
}
