package main

// assignRows distributes framebuffer rows across worker goroutines in round
// robin fashion so that expensive regions do not cluster on one worker.
func assignRows(workerCount, height int) [][]int {
	if workerCount < 1 {
		workerCount = 1
	}
	rows := make([][]int, workerCount)
	for y := 0; y < height; y++ {
		idx := y % workerCount
		rows[idx] = append(rows[idx], y)
	}
	return rows
}

// startWorkers launches the background goroutines that trace framebuffer rows.
func (fr *frameRenderer) startWorkers() {
	if fr.workersStarted {
		return
	}
	fr.workersStarted = true
	for i := 0; i < fr.workerCount; i++ {
		go fr.renderWorkerLoop(i)
	}
}

// renderWorkerLoop waits for a frame dispatch, shades the rows assigned to
// this worker, and signals completion. Workers never outlive the renderer's
// barrier protocol: a new step broadcast wakes them, the pending counter
// reaching zero wakes the dispatcher.
func (fr *frameRenderer) renderWorkerLoop(index int) {
	lastStep := 0
	fr.workerMu.Lock()
	for {
		for fr.workerStep == lastStep {
			fr.workerCond.Wait()
		}
		lastStep = fr.workerStep
		p := fr.frame
		var rows []int
		if index < len(fr.workerRows) {
			rows = fr.workerRows[index]
		}
		fr.workerMu.Unlock()

		for _, y := range rows {
			fr.renderRow(y, p)
		}

		fr.workerMu.Lock()
		fr.workerPending--
		if fr.workerPending == 0 {
			fr.workerCond.Broadcast()
		}
	}
}
