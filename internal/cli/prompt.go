package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// Prompter supplies the three interactive answers the session may need.
// Flags can preempt any of them.
type Prompter interface {
	AskPath() (string, error)
	ConfirmSave() (bool, error)
	AskSavePath() (string, error)
}

// HuhPrompter asks on the terminal.
type HuhPrompter struct{}

func (HuhPrompter) AskPath() (string, error) {
	var path string
	err := huh.NewInput().
		Prompt("Enter path to your WAV or MP3 file: ").
		Value(&path).
		Run()
	return strings.TrimSpace(path), err
}

func (HuhPrompter) ConfirmSave() (bool, error) {
	var save bool
	err := huh.NewConfirm().
		Title("Do you want to save the transcription to a file? (y/n)").
		Value(&save).
		Run()
	return save, err
}

func (HuhPrompter) AskSavePath() (string, error) {
	var path string
	err := huh.NewInput().
		Prompt("Enter filename to save (e.g., output.txt): ").
		Value(&path).
		Run()
	return strings.TrimSpace(path), err
}

// declinePrompter backs NON_INTERACTIVE=1: it never asks and never
// saves.
type declinePrompter struct{}

func (declinePrompter) AskPath() (string, error) {
	return "", errors.New("no input path available without prompts")
}

func (declinePrompter) ConfirmSave() (bool, error)   { return false, nil }
func (declinePrompter) AskSavePath() (string, error) { return "", nil }
