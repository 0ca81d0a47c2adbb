package profparse

import "strings"

// Derived computes secondary metrics from the extracted values. Every entry
// is conditional on its inputs being present; an empty map is a valid
// result.
func Derived(metrics map[string]int64) map[string]float64 {
	derived := make(map[string]float64)

	// Primary execution time: prefer the QNN-level measurement.
	primary, havePrimary := metrics["qnn_execute_time_us"]
	if !havePrimary {
		primary, havePrimary = metrics["accelerator_execute_time_us"]
	}
	if havePrimary {
		derived["primary_execution_time_us"] = float64(primary)
	}

	if n, ok := metrics["num_inferences"]; ok && havePrimary && primary > 0 && n > 0 {
		derived["throughput_inferences_per_second"] = 1_000_000 * float64(n) / float64(primary)
		derived["avg_time_per_inference_us"] = float64(primary) / float64(n)
	}

	addCategory(derived, metrics, "execute", "execution")
	addCategory(derived, metrics, "finalize", "finalize")
	addCategory(derived, metrics, "deinit", "deinit")

	if accel, ok := metrics["accelerator_execute_time_us"]; ok {
		if qnn, ok := metrics["qnn_execute_time_us"]; ok && qnn > 0 {
			derived["accelerator_efficiency_percent"] = float64(accel) / float64(qnn) * 100
		}
	}

	if rpc, ok := metrics["rpc_execute_time_us"]; ok {
		if accel, ok := metrics["accelerator_execute_time_us"]; ok && accel > 0 {
			derived["rpc_overhead_ratio"] = float64(rpc) / float64(accel)
		}
	}

	return derived
}

// addCategory sums and averages all timing keys containing the given
// substring.
func addCategory(derived map[string]float64, metrics map[string]int64, match, name string) {
	var total int64
	var count int
	for key, value := range metrics {
		if strings.Contains(key, match) && strings.Contains(key, "time_us") {
			total += value
			count++
		}
	}
	if count > 0 {
		derived["total_"+name+"_time_us"] = float64(total)
		derived["avg_"+name+"_time_us"] = float64(total) / float64(count)
	}
}
