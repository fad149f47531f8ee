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

// Package format renders guest transaction layout state for debug
// dumps: regions, instruction descriptors, account keys, and
// instruction account references.
package format

import (
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/cielu/go-guestvm/common"
	"github.com/cielu/go-guestvm/guestabi"
	"github.com/cielu/go-guestvm/pkg/encodtext"
	. "github.com/cielu/go-guestvm/pkg/encodtext"
	"github.com/cielu/go-guestvm/txlayout"
)

// Region renders one installed guest memory region: its base address,
// size, and writability.
func Region(r txlayout.Region) string {
	perm := "RO"
	if r.Writable {
		perm = "RW"
	}
	return IndigoBG("Region") + ": " +
		Bold(Sf("0x%x", r.GuestBase)) + " " +
		Shakespeare(Sf("len=%d", len(r.Data))) + " " +
		Purple(Bold(perm))
}

// Instruction renders a guest instruction descriptor: its program
// index, CPI nesting level, parent link, and account-slice pointer.
func Instruction(idx int, d guestabi.GuestInstructionDescriptor) string {
	return Purple(Bold(Sf("Instruction[%d]", idx))) + ": " +
		Sf("program_id_idx=%d cpi_level=%d parent=%d accounts@0x%x len=%d",
			d.ProgramIDIdx, d.CPINestingLevel, d.ParentIxIdx, d.IxAccounts.Pointer, d.IxAccounts.Length)
}

// Account renders an account key alongside its guest region base.
func Account(name string, pubKey common.Address, guestBase uint64) string {
	return Shakespeare(name) + ": " + encodtext.ColorizeBG(pubKey.String()) + " @ " + Sf("0x%x", guestBase)
}

// InstructionAccount renders a single guest instruction account
// reference, flagging signer/writable.
func InstructionAccount(index int, ref guestabi.GuestInstructionAccount) string {
	out := Shakespeare(Sf("ix_account[%d]", index)) + ": " + Sf("tx_acc_idx=%d [", ref.TxAccIdx)
	if ref.IsWritable() {
		out += "WRITE"
	}
	if ref.IsSigner() {
		if ref.IsWritable() {
			out += ", "
		}
		out += "SIGN"
	}
	out += "]"
	return out
}

// Param dumps an arbitrary value, indenting every line after the first
// so multi-line dumps stay readable next to a "name: " prefix.
func Param(name string, value interface{}) string {
	return Sf(
		Shakespeare(name)+": %s",
		strings.TrimSpace(
			prefixEachLineExceptFirst(
				strings.Repeat(" ", len(name)+2),
				strings.TrimSpace(spew.Sdump(value)),
			),
		),
	)
}

func prefixEachLineExceptFirst(prefix string, s string) string {
	return foreachLine(s,
		func(i int, line string) string {
			if i == 0 {
				return Lime(line) + "\n"
			}
			return prefix + Lime(line) + "\n"
		})
}

type sf func(int, string) string

func foreachLine(str string, transform sf) (out string) {
	for idx, line := range strings.Split(str, "\n") {
		out += transform(idx, line)
	}
	return
}
