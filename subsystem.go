package gxsocket

// --------------------------------------------------------------------------
//
//	Gurux Ltd
//
// Filename:        $HeadURL$
//
// Version:         $Revision$,
//
//	$Date$
//	$Author$
//
// # Copyright (c) Gurux Ltd
//
// ---------------------------------------------------------------------------
//
//	DESCRIPTION
//
// This file is a part of Gurux Device Framework.
//
// Gurux Device Framework is Open Source software; you can redistribute it
// and/or modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2 of the License.
// Gurux Device Framework is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU General Public License for more details.
//
// More information of Gurux products: https://www.gurux.org
//
// This code is licensed under the GNU General Public License v2.
// Full text may be retrieved at http://www.gnu.org/licenses/gpl-2.0.txt
// ---------------------------------------------------------------------------

import "sync"

// subsystem reference-counts the platform socket subsystem. Platform startup
// runs on the zero-to-one transition and teardown on the one-to-zero
// transition, so the subsystem is initialized before the first live handle
// and torn down after the last one. Sockets may be created and closed from
// different goroutines, hence the lock.
//
// On platforms without an explicit socket subsystem the init and cleanup
// hooks are no-ops, but the count is maintained everywhere so the lifecycle
// stays observable and testable.
type subsystem struct {
	mu    sync.Mutex
	count int
}

var netSubsystem subsystem

// acquire takes one reference, starting the platform subsystem when the
// count leaves zero.
func (s *subsystem) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.count == 0 {
		if err := osInit(); err != nil {
			return err
		}
	}
	s.count++
	return nil
}

// release gives back one reference, tearing the platform subsystem down when
// the count reaches zero.
func (s *subsystem) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.count == 0 {
		return
	}
	s.count--
	if s.count == 0 {
		osCleanup()
	}
}

// live returns the current reference count.
func (s *subsystem) live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
