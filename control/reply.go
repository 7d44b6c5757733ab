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

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/sabouaram/netsim/errtax"
	"github.com/sabouaram/netsim/signal"
)

// envelope builds the {type, payload} reply map the node dispatcher and
// wire codec expect.
func envelope(replyType string, payload map[string]any) signal.Reply {
	return signal.Reply{"type": replyType, "payload": payload}
}

func success() signal.Reply {
	return envelope("SuccessReply", map[string]any{})
}

// errorReply converts a Go error into ErrorReply{error, detail}. A
// *errtax.Error uses its Kind's wire name; any other error uses its
// concrete type's name, mirroring "use the exception's class name" for a
// language with no built-in exception hierarchy.
func errorReply(err error) signal.Reply {
	return envelope("ErrorReply", map[string]any{
		"error":  errorKindName(err),
		"detail": err.Error(),
	})
}

func errorKindName(err error) string {
	var tax *errtax.Error
	if errors.As(err, &tax) {
		return tax.Kind().String()
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return "Generic"
	}
	return t.Name()
}

// recoverReply converts a recovered panic into the same ErrorReply shape
// a returned error would produce.
func recoverReply(r any) signal.Reply {
	if err, ok := r.(error); ok {
		return errorReply(err)
	}
	return envelope("ErrorReply", map[string]any{
		"error":  "PanicError",
		"detail": fmt.Sprint(r),
	})
}
