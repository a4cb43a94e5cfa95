package repository

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// PromptConfirmer asks a yes/no question on the terminal.
type PromptConfirmer struct{}

func (PromptConfirmer) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
