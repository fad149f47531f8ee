// Copyright 2021 github.com/gagliardetto
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package encodtext holds the color helpers the dump formatters use to
// print guest transaction layouts to a terminal.
package encodtext

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	boldColor       = color.New(color.Bold)
	purpleColor     = color.New(color.FgMagenta)
	shakespeareColor = color.New(color.FgCyan)
	limeColor       = color.New(color.FgGreen)
	indigoBGColor   = color.New(color.BgBlue, color.FgWhite)
	colorizeBGColor = color.New(color.BgHiBlack, color.FgHiWhite)
)

// Sf is a thin fmt.Sprintf wrapper kept for symmetry with the other
// helpers so callers never have to reach for "fmt" directly.
func Sf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}

func Bold(s string) string {
	return boldColor.Sprint(s)
}

func Purple(s string) string {
	return purpleColor.Sprint(s)
}

func Shakespeare(s string) string {
	return shakespeareColor.Sprint(s)
}

func Lime(s string) string {
	return limeColor.Sprint(s)
}

func IndigoBG(s string) string {
	return indigoBGColor.Sprint(s)
}

// ColorizeBG highlights a value that identifies something in the
// address space: an account key, a guest pointer, a region base.
func ColorizeBG(s string) string {
	return colorizeBGColor.Sprint(s)
}
