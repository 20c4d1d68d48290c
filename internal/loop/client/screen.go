package client

import (
	"fmt"
	"time"
)

var (
	titleArt = []string{
		` __  __  ___  _____  ___   ___   ___  ___    _    _     _    `,
		`|  \/  || __||_   _|| __| / _ \ | _ \| __|  /_\  | |   | |   `,
		`| |\/| || _|   | |  | _| | (_) ||   /| _|  / _ \ | |__ | |__ `,
		`|_|  |_||___|  |_|  |___| \___/ |_|_\|_|  /_/ \_\|____||____|`,
	}
	pausedArt = []string{
		` ___    _    _   _  ___  ___  ___  `,
		`| _ \  /_\  | | | |/ __|| __||   \ `,
		`|  _/ / _ \ | |_| |\__ \| _| | |) |`,
		`|_|  /_/ \_\ \___/ |___/|___||___/ `,
	}
	gameOverArt = []string{
		`  ___    _    __  __  ___      ___  __   __ ___  ___ `,
		` / __|  /_\  |  \/  || __|    / _ \ \ \ / /| __|| _ \`,
		`| (_ | / _ \ | |\/| || _|    | (_) | \ V / | _| |   /`,
		` \___|/_/ \_\|_|  |_||___|    \___/   \_/  |___||_|_\`,
	}
	controlLines = []string{
		"Arrows / WASD  . . .  Move",
		"SPACE  . . . . . . . Shoot",
		"P  . . . . . . . . . Pause",
		"Q  . . . . . . . . .  Quit",
	}
)

// blinkOn alternates every 600 ms.
func blinkOn(now time.Time) bool {
	return now.UnixMilli()/600%2 == 0
}

// drawUI adds the labels for the current screen to the view.
func (c *Client) drawUI(now time.Time) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth/2 + 1
	centerY := termHeight/2 + 1

	if c.state.phase == PhaseShutdown {
		c.drawShutdownScreen(centerX, centerY, now)
		return
	}

	if c.state.inactive {
		c.drawInactivityScreen(centerX, centerY, now)
		return
	}

	switch c.state.phase {
	case PhaseIntro:
		c.drawIntroScreen(centerX, centerY, now)
	case PhasePlaying:
		c.drawPlayingHUD(termWidth, termHeight)
	case PhasePaused:
		c.drawPlayingHUD(termWidth, termHeight)
		c.drawPausedScreen(centerX, centerY)
	case PhaseGameOver:
		c.drawGameOverScreen(centerX, centerY, now)
	}
}

// drawPlayingHUD draws score, level and lives on the top row and the player
// count bottom right. Fixed-width fields keep shrinking values from leaving
// residual characters.
func (c *Client) drawPlayingHUD(termWidth, termHeight int) {
	stats := c.engine.Stats()
	v := &c.view

	v.add(2, 1, fmt.Sprintf("Score: %-8d", stats.Score), ToneHUD)

	levelText := fmt.Sprintf("Level: %-3d", stats.Level)
	v.center(termWidth/2+1, 1, levelText, ToneHUD)

	livesText := fmt.Sprintf("Lives: %-3d", stats.Lives)
	v.add(termWidth-len(livesText), 1, livesText, ToneHUD)

	if c.server != nil {
		playersText := fmt.Sprintf("Players: %-4d", c.server.Players())
		v.add(termWidth-len(playersText), termHeight, playersText, ToneHint)
	}
}

// drawIntroScreen draws the title screen.
func (c *Client) drawIntroScreen(centerX, centerY int, now time.Time) {
	v := &c.view
	titleStartY := centerY - 7
	v.centerBlock(centerX, titleStartY, titleArt, ToneTitle)

	subtitle := "~ Dodge the meteor storm ~"
	v.center(centerX, titleStartY+len(titleArt)+1, subtitle, ToneText)

	controlsY := titleStartY + len(titleArt) + 3
	v.center(centerX, controlsY, "Controls", ToneText)
	for i, line := range controlLines {
		v.center(centerX, controlsY+1+i, line, ToneHint)
	}

	promptY := controlsY + len(controlLines) + 2
	if blinkOn(now) {
		v.center(centerX, promptY, ">>  Press SPACE to Start  <<", ToneAlert)
	}
	c.drawTopScores(centerX, promptY+2)
}

// drawPausedScreen overlays the pause notice on the frozen playfield.
func (c *Client) drawPausedScreen(centerX, centerY int) {
	v := &c.view
	titleStartY := centerY - 3
	v.centerBlock(centerX, titleStartY, pausedArt, ToneTitle)
	v.center(centerX, titleStartY+len(pausedArt)+1, "Press P to resume, Q to quit", ToneHint)
}

// drawGameOverScreen draws the final score and the restart prompt.
func (c *Client) drawGameOverScreen(centerX, centerY int, now time.Time) {
	v := &c.view
	titleStartY := centerY - 6
	v.centerBlock(centerX, titleStartY, gameOverArt, ToneAlert)

	row := titleStartY + len(gameOverArt) + 1
	v.center(centerX, row, fmt.Sprintf("Score: %d", c.state.finalScore), ToneText)
	v.center(centerX, row+1, fmt.Sprintf("Level reached: %d", c.engine.Level()), ToneHint)
	if c.state.bestScore > c.state.finalScore {
		v.center(centerX, row+2, fmt.Sprintf("Best this session: %d", c.state.bestScore), ToneHint)
	}

	if blinkOn(now) {
		v.center(centerX, row+4, ">>  Press SPACE to Restart  <<", ToneAlert)
	}
	c.drawTopScores(centerX, row+6)
}

// drawTopScores lists the lobby leaderboard, if there is one.
func (c *Client) drawTopScores(centerX, row int) {
	if c.server == nil {
		return
	}
	entries := c.server.TopScores(topScoreCount)
	if len(entries) == 0 {
		return
	}
	v := &c.view
	v.center(centerX, row, "Top pilots", ToneText)
	for i, e := range entries {
		v.center(centerX, row+1+i, fmt.Sprintf("%d. %-16s %8d", i+1, e.Username, e.Score), ToneHint)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int, now time.Time) {
	v := &c.view
	v.center(centerX, centerY-2, "INACTIVITY WARNING", ToneAlert)

	left := c.opts.IdleLimit - now.Sub(c.state.lastInput)
	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		max(int(left.Seconds()), 0),
	)
	v.center(centerX, centerY, msg, ToneText)
	v.center(centerX, centerY+2, "Press any key to continue", ToneHint)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int, now time.Time) {
	v := &c.view
	v.center(centerX, centerY-3, "SERVER SHUTTING DOWN", ToneAlert)
	v.center(centerX, centerY-1, "The server is restarting for maintenance.", ToneText)
	v.center(centerX, centerY, "Please reconnect in a moment.", ToneText)

	remaining := int(c.state.shutdownAt.Sub(now).Seconds()) + 1
	v.center(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", max(remaining, 1)), ToneText)
	v.center(centerX, centerY+4, "Press Q to disconnect now", ToneHint)
}
