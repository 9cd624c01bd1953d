package app

import "github.com/charmbracelet/bubbles/key"

// keyMap описывает глобальные клавиши плеера
type keyMap struct {
	PlayPause key.Binding
	Next      key.Binding
	Previous  key.Binding
	Repeat    key.Binding
	Shuffle   key.Binding
	SeekBack  key.Binding
	SeekFwd   key.Binding
	TimeMode  key.Binding
	Open      key.Binding
	Rescan    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PlayPause: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "играть/пауза")),
		Next:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "следующий")),
		Previous:  key.NewBinding(key.WithKeys("p", "b"), key.WithHelp("p", "предыдущий")),
		Repeat:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "повтор")),
		Shuffle:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "перемешать")),
		SeekBack:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "назад")),
		SeekFwd:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "вперед")),
		TimeMode:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "время")),
		Open:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "папка")),
		Rescan:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "обновить")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "справка")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "выход")),
	}
}

// ShortHelp реализует help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.Next, k.Previous, k.Open, k.Help, k.Quit}
}

// FullHelp реализует help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.Next, k.Previous, k.Repeat},
		{k.Shuffle, k.SeekBack, k.SeekFwd, k.TimeMode},
		{k.Open, k.Rescan, k.Help, k.Quit},
		{
			key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "поиск")),
			key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "меню")),
			key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "убрать")),
		},
	}
}
