package main

import (
	"github.com/AlecAivazis/survey/v2"
)

type prompter interface {
	Select(message string, options []string, def string) (string, error)
	Confirm(message string, def bool) (bool, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Select(message string, options []string, def string) (string, error) {
	prompt := &survey.Select{
		Message: message,
		Options: options,
		Default: def,
	}
	var out string
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", err
	}
	return out, nil
}

func (surveyPrompter) Confirm(message string, def bool) (bool, error) {
	prompt := &survey.Confirm{
		Message: message,
		Default: def,
	}
	var out bool
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, err
	}
	return out, nil
}
