package main

import (
	"log"

	"fyne.io/fyne/v2"
	"golang.design/x/hotkey"
)

// globalHotkey brings the planner window to the front from anywhere
var globalHotkey *hotkey.Hotkey

func (da *DayApp) registerGlobalHotkey() {
	if globalHotkey != nil {
		return
	}

	go func() {
		hk := hotkey.New([]hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}, hotkey.KeyD)
		if err := hk.Register(); err != nil {
			log.Printf("Failed to register Ctrl+Shift+D hotkey: %v", err)
			return
		}
		globalHotkey = hk
		log.Println("Global hotkey registered (Ctrl+Shift+D)")

		for range hk.Keydown() {
			fyne.Do(func() {
				da.raisePlanner()
			})
		}
	}()
}

func (da *DayApp) unregisterGlobalHotkey() {
	if globalHotkey != nil {
		globalHotkey.Unregister()
		globalHotkey = nil
	}
}
