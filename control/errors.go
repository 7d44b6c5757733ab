/*
 * MIT License
 *
 * Copyright (c) 2026 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package control

import "fmt"

// NeverReceivedMessage is returned by LastReceivedTimeRequest for an IN
// message whose last_time is still -1.
type NeverReceivedMessage struct {
	Message string
}

func (e *NeverReceivedMessage) Error() string {
	return fmt.Sprintf("message %q was never received", e.Message)
}

// ErrorFetchLastReceived is returned by FetchLastReceivedRequest when the
// requested count exceeds the total number of dispatches ever recorded.
type ErrorFetchLastReceived struct {
	Message   string
	Requested int
}

func (e *ErrorFetchLastReceived) Error() string {
	return fmt.Sprintf("requested %d payloads for %q but fewer were ever received", e.Requested, e.Message)
}

// UpdateGlobalVariableError is returned by UpdateGlobalVariable when the
// named global was never defined.
type UpdateGlobalVariableError struct {
	Name string
}

func (e *UpdateGlobalVariableError) Error() string {
	return fmt.Sprintf("global %q is not defined", e.Name)
}
