package state

import "time"

// MaxNotices bounds the notice history.
const MaxNotices = 20

type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

func (l NoticeLevel) String() string {
	if l == NoticeError {
		return "error"
	}
	return "info"
}

// Notice is a transient message for the status line.
type Notice struct {
	Level NoticeLevel
	Text  string
	At    time.Time
}

func appendNotice(list []Notice, n Notice) []Notice {
	list = append(list, n)
	if over := len(list) - MaxNotices; over > 0 {
		list = append([]Notice(nil), list[over:]...)
	}
	return list
}
