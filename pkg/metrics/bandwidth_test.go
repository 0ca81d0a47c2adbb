package metrics

import "testing"

const bwHeader = "DDR bandwidth summary"

func TestExtractBandwidth(t *testing.T) {
	lines := []string{
		"300.0ms [ INFO ] All graphs executed successfully",
		"310.0ms [ INFO ] DDR bandwidth summary",
		"spill_bytes=1024",
		"fill_bytes=2048",
		"write_total_bytes=4096",
		"read_total_bytes=8192",
		"",
		"320.0ms [ INFO ] qnn-net-run complete",
	}

	bw, diags := ExtractBandwidth(lines, bwHeader)
	if len(diags) != 0 {
		t.Errorf("diags = %v; want none", diags)
	}
	if bw.SpillBytes != 1024 || bw.FillBytes != 2048 {
		t.Errorf("spill/fill = %d/%d; want 1024/2048", bw.SpillBytes, bw.FillBytes)
	}
	if bw.WriteTotalBytes != 4096 || bw.ReadTotalBytes != 8192 {
		t.Errorf("write/read = %d/%d; want 4096/8192", bw.WriteTotalBytes, bw.ReadTotalBytes)
	}
}

func TestExtractBandwidthAbsentBlock(t *testing.T) {
	lines := []string{
		"10.0ms [ INFO ] Backend create started",
		"20.0ms [ INFO ] Backend create done successfully",
	}

	bw, diags := ExtractBandwidth(lines, bwHeader)
	if bw != (Bandwidth{}) {
		t.Errorf("bw = %+v; want all zeros for absent block", bw)
	}
	if len(diags) != 1 {
		t.Errorf("len(diags) = %d; want 1", len(diags))
	}
}

func TestExtractBandwidthMissingKey(t *testing.T) {
	lines := []string{
		"DDR bandwidth summary",
		"spill_bytes=512",
		"",
	}

	bw, diags := ExtractBandwidth(lines, bwHeader)
	if bw.SpillBytes != 512 {
		t.Errorf("SpillBytes = %d; want 512", bw.SpillBytes)
	}
	if bw.FillBytes != 0 || bw.WriteTotalBytes != 0 || bw.ReadTotalBytes != 0 {
		t.Errorf("missing counters = %+v; want zeros", bw)
	}
	if len(diags) != 3 {
		t.Errorf("len(diags) = %d; want 3 missing-counter diagnostics", len(diags))
	}
}

func TestExtractBandwidthBlockEndsAtBlankLine(t *testing.T) {
	lines := []string{
		"DDR bandwidth summary",
		"spill_bytes=1",
		"",
		"fill_bytes=999", // outside the block
	}

	bw, _ := ExtractBandwidth(lines, bwHeader)
	if bw.FillBytes != 0 {
		t.Errorf("FillBytes = %d; want 0 (key outside block ignored)", bw.FillBytes)
	}
}
