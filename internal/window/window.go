// Package window tracks which top-level windows are open and what each one
// shows. The registry only associates host handles with a Kind; the host
// owns the windows themselves.
package window

import (
	"fmt"

	"github.com/atomicstack/tagmaster/internal/host"
)

// Kind is the logical content of a window.
type Kind int

const (
	KindMain Kind = iota
	KindProgramSettings
	KindProjectSettings
	KindNewProject
)

// Kinds lists every window kind.
var Kinds = []Kind{KindMain, KindProgramSettings, KindProjectSettings, KindNewProject}

func (k Kind) String() string {
	switch k {
	case KindMain:
		return "main"
	case KindProgramSettings:
		return "program-settings"
	case KindProjectSettings:
		return "project-settings"
	case KindNewProject:
		return "new-project"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Title is the window caption.
func (k Kind) Title() string {
	switch k {
	case KindMain:
		return "TagMaster"
	case KindProgramSettings:
		return "Program Settings"
	case KindProjectSettings:
		return "Project Settings"
	case KindNewProject:
		return "New Project"
	default:
		return k.String()
	}
}

// Singleton reports whether at most one window of this kind may be open.
func (k Kind) Singleton() bool {
	switch k {
	case KindMain, KindProgramSettings, KindProjectSettings:
		return true
	default:
		return false
	}
}

// Sizing returns the policy used when asking the host for a window.
func (k Kind) Sizing() host.Sizing {
	switch k {
	case KindMain:
		return host.Sizing{Title: k.Title(), Fill: true}
	case KindProgramSettings, KindProjectSettings:
		return host.Sizing{Title: k.Title(), Width: 56, Height: 14}
	case KindNewProject:
		return host.Sizing{Title: k.Title(), Width: 64, Height: 16}
	default:
		return host.Sizing{Title: k.Title(), Width: 48, Height: 10}
	}
}
