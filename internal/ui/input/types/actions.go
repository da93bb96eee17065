package types

// Page scrolling
type ScrollPageAction struct {
	Rows  int // positive scrolls down
	Pages int // whole viewports, added to Rows
}

func (a ScrollPageAction) Type() string { return "scroll_page" }

type JumpPageAction struct {
	Bottom bool
}

func (a JumpPageAction) Type() string { return "jump_page" }

// Slide navigation
type NavigateSlideAction struct {
	Forward bool
}

func (a NavigateSlideAction) Type() string { return "navigate_slide" }

type GoToSlideAction struct {
	Index int
}

func (a GoToSlideAction) Type() string { return "goto_slide" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Command actions
type OpenStoryAction struct{}

func (a OpenStoryAction) Type() string { return "open_story" }

type ReloadAction struct{}

func (a ReloadAction) Type() string { return "reload" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
