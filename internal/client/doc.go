// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command line client of the vault.
//
// It wires configuration, local storage, device authentication, the server
// adapter and the client services into a single process, and dispatches the
// commands given on the command line or typed into the interactive shell.
package client
