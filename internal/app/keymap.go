package app

// Key binding constants used in handleKey.
const (
	KeyQuit    = "q"
	KeyQuitUp  = "Q"
	KeyCtrlC   = "ctrl+c"
	KeyEnter   = "enter"
	KeyUp      = "up"
	KeyDown    = "down"
	KeyJ       = "j"
	KeyK       = "k"
	KeyConcert = "1"
	KeyQuick   = "2"
	KeyForce   = "f"
	KeySkip    = "s"
	KeyBack    = "b"
	KeyEsc     = "esc"
	KeyReplay  = "r"
)
