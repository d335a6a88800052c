// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package enc28j60

import "testing"

func TestMaadrByIndex(t *testing.T) {
	want := []reg8{maadr1, maadr2, maadr3, maadr4, maadr5, maadr6}
	for i, r := range want {
		if got := maadrByIndex(i); got != r {
			t.Errorf("maadrByIndex(%d) = %+v; want %+v", i, got, r)
		}
	}
}

func TestBankString(t *testing.T) {
	cases := map[Bank]string{
		Bank0:      "Bank0",
		Bank1:      "Bank1",
		Bank2:      "Bank2",
		Bank3:      "Bank3",
		Common:     "Common",
		Bank(0xff): "Bank(?)",
	}
	for b, want := range cases {
		if got := b.String(); got != want {
			t.Errorf("Bank(%d).String() = %q; want %q", b, got, want)
		}
	}
}
