package playback

import "fmt"

// State - состояние контроллера воспроизведения
type State int

// Состояния контроллера
const (
	// StateEmpty - очередь пуста
	StateEmpty State = iota
	// StateStopped - очередь есть, в медиаресурс ничего не загружено
	StateStopped
	// StatePlaying - трек воспроизводится
	StatePlaying
	// StatePaused - трек загружен и стоит на паузе
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Loaded сообщает, загружен ли трек в медиаресурс
func (s State) Loaded() bool {
	return s == StatePlaying || s == StatePaused
}

// RepeatMode определяет поведение по окончании трека
type RepeatMode int

// Режимы повтора
const (
	RepeatOff RepeatMode = iota
	RepeatOne
	RepeatLoop
)

func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "off"
	case RepeatOne:
		return "one"
	case RepeatLoop:
		return "loop"
	default:
		return fmt.Sprintf("RepeatMode(%d)", int(m))
	}
}

// Next возвращает следующий режим по кругу off -> one -> loop -> off
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatOne
	case RepeatOne:
		return RepeatLoop
	default:
		return RepeatOff
	}
}

// ParseRepeatMode разбирает режим повтора из строки конфигурации
func ParseRepeatMode(s string) (RepeatMode, error) {
	switch s {
	case "", "off":
		return RepeatOff, nil
	case "one":
		return RepeatOne, nil
	case "loop":
		return RepeatLoop, nil
	default:
		return RepeatOff, fmt.Errorf("неизвестный режим повтора: %q", s)
	}
}

// CommandKind - тип команды контроллера
type CommandKind int

// Команды, которые принимает контроллер
const (
	CmdPlayPause CommandKind = iota
	CmdNext
	CmdPrevious
	CmdEnded
	CmdSeek
	CmdCycleRepeat
	CmdShuffle
	CmdPlayAt
	CmdRemoveAt
	CmdTick
)

func (k CommandKind) String() string {
	names := [...]string{"play-pause", "next", "previous", "ended", "seek", "cycle-repeat", "shuffle", "play-at", "remove-at", "tick"}
	if k < 0 || int(k) >= len(names) {
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
	return names[k]
}

// Command - событие интерфейса или медиаресурса.
// Index используется командами CmdPlayAt и CmdRemoveAt, Position - командой CmdSeek.
type Command struct {
	Kind     CommandKind
	Index    int
	Position float64
}

// Do создает команду без аргументов
func Do(kind CommandKind) Command {
	return Command{Kind: kind}
}

// SeekTo создает команду перемотки на долю position (0.0-1.0) длительности трека
func SeekTo(position float64) Command {
	return Command{Kind: CmdSeek, Position: position}
}

// PlayAt создает команду "Play Now" для строки очереди
func PlayAt(index int) Command {
	return Command{Kind: CmdPlayAt, Index: index}
}

// RemoveAt создает команду удаления строки очереди
func RemoveAt(index int) Command {
	return Command{Kind: CmdRemoveAt, Index: index}
}
