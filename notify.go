package main

import (
	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/audio"
)

// notifyRemoteChange rings the chime when another participant changes
// the board. Silent while the user has it turned off and during the
// initial replay after a (re)connect, and a still-ringing previous
// chime is cut off so stacked changes do not overlap.
func (da *DayApp) notifyRemoteChange() {
	da.stateMu.Lock()
	enabled := da.config.ChimeEnabled && da.replayDone
	last := da.lastChime
	da.stateMu.Unlock()

	if !enabled {
		return
	}

	last.Stop()
	player := audio.PlayChime()

	da.stateMu.Lock()
	da.lastChime = player
	da.stateMu.Unlock()
}
