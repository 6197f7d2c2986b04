// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"

	"github.com/csvdelta/csvdelta/internal/report"
	"github.com/csvdelta/csvdelta/internal/table"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{report.OutputText, report.OutputJSON, report.OutputYAML, report.OutputCSV}
	valid := false
	for _, v := range validOutputFlagValues {
		if v == value {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

// FormatValidator accepts the table format names understood by the loader.
func FormatValidator(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("format must be a string")
	}
	_, err := table.ParseFormat(s)
	return err
}

// DelimiterValidator accepts a single character, "tab" or `\t`.
func DelimiterValidator(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("delimiter must be a string")
	}
	_, err := table.ParseDelimiter(s)
	return err
}

// PaddingValidator rejects negative padding.
func PaddingValidator(value any) error {
	n, ok := value.(int)
	if !ok {
		return fmt.Errorf("padding must be an integer")
	}
	if n < 0 {
		return fmt.Errorf("padding must not be negative")
	}
	return nil
}
