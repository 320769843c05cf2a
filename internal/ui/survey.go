package ui

import "github.com/AlecAivazis/survey/v2"

// IconOption gives survey prompts the same "-" marker the huh forms use.
func IconOption() survey.AskOpt {
	return survey.WithIcons(func(icons *survey.IconSet) {
		icons.Question.Text = "-"
		icons.Help.Text = "?"
	})
}

// WarningIconOption marks questions whose "yes" can not be undone.
func WarningIconOption() survey.AskOpt {
	return survey.WithIcons(func(icons *survey.IconSet) {
		icons.Question.Text = "!"
		icons.Question.Format = "red+b"
	})
}
