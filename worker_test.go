package main

import "testing"

func TestAssignRowsCoversEveryRow(t *testing.T) {
	for _, workerCount := range []int{1, 2, 3, 7, 16} {
		rows := assignRows(workerCount, 10)
		if len(rows) != workerCount {
			t.Fatalf("assignRows(%d, 10) returned %d slices", workerCount, len(rows))
		}
		seen := make(map[int]int)
		for idx, slice := range rows {
			for _, y := range slice {
				seen[y]++
				if y%workerCount != idx {
					t.Errorf("row %d assigned to worker %d, want %d", y, idx, y%workerCount)
				}
			}
		}
		for y := 0; y < 10; y++ {
			if seen[y] != 1 {
				t.Errorf("workerCount %d: row %d assigned %d times", workerCount, y, seen[y])
			}
		}
	}
}

func TestAssignRowsClampsWorkerCount(t *testing.T) {
	rows := assignRows(0, 5)
	if len(rows) != 1 || len(rows[0]) != 5 {
		t.Errorf("assignRows(0, 5) = %v, want one slice with all rows", rows)
	}
	rows = assignRows(-3, 5)
	if len(rows) != 1 || len(rows[0]) != 5 {
		t.Errorf("assignRows(-3, 5) = %v, want one slice with all rows", rows)
	}
}
