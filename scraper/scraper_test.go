package scraper

import (
	"testing"

	"github.com/go-rod/rod"
)

func TestClose_AttachedOnlyDisconnects(t *testing.T) {
	// The browser field stays nil: if Close touched the browser handle at
	// all in attach mode (rod's Browser.Close sends the CDP Browser.close
	// command, which kills the user's whole browser), this test would
	// panic on the nil pointer.
	var disconnected bool
	s := &Scraper{
		attached:   true,
		pagePool:   rod.NewPagePool(2),
		disconnect: func() { disconnected = true },
	}

	s.Close()

	if !disconnected {
		t.Error("Close did not sever the CDP connection")
	}
}
