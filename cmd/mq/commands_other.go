// Copyright 2019 Aleksandr Demakin. All rights reserved.

//go:build !linux

package main

func registerPlatformCommands() {}
