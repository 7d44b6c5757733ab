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
	"time"

	"github.com/google/uuid"

	"github.com/sabouaram/netsim/netlog"
	"github.com/sabouaram/netsim/network"
	"github.com/sabouaram/netsim/signal"
	"github.com/sabouaram/netsim/statemachine"
	"github.com/sabouaram/netsim/wire"
)

// connectionPollInterval and connectionPollBudget bound a waiting
// ConnectionRequest: poll once a second for up to a minute before giving up
// and reporting whatever GetConnectionResult last said.
const (
	connectionPollInterval = time.Second
	connectionPollBudget   = 60
)

type counterWrapper interface {
	Counter() uint64
}

type lastTimeWrapper interface {
	LastTime() int64
}

type lastNWrapper interface {
	Last(n int) ([]wire.Value, error)
}

// RegisterHandlers wires every fixed control request type onto nodeName's
// control signal, dispatching into ctl and sm. A request type with an entry
// in descriptor has its payload validated against that entry first; one
// without an entry is dispatched unvalidated. A request type present in
// descriptor but not recognized below is simply never connected -- the
// node's dispatchControl then reports "No answer" for it, same as any
// other unconnected signal.
func RegisterHandlers(bus *signal.Bus, ctl *network.Controller, sm *statemachine.Manager, nodeName string, descriptor Descriptor, log netlog.Logger) {
	if log == nil {
		log = netlog.Noop()
	}
	log = log.Named("control")

	for reqType, body := range handlerTable(ctl, sm, log) {
		spec, ok := descriptor[reqType]
		connect(bus, nodeName, reqType, spec, ok, body, log)
	}
}

type handlerBody func(payload map[string]any) signal.Reply

func connect(bus *signal.Bus, nodeName, reqType string, spec PayloadSpec, validate bool, body handlerBody, log netlog.Logger) {
	bus.Connect(signal.MessageSignal(nodeName, reqType), func(a signal.Args) (reply signal.Reply) {
		correlationID := uuid.NewString()

		defer func() {
			if r := recover(); r != nil {
				log.Warnf("%s[%s]: recovered panic: %v", reqType, correlationID, r)
				reply = recoverReply(r)
			}
		}()

		raw, _ := a.Data.(map[string]any)
		payload := raw
		if validate {
			validated, err := spec.Validate(raw)
			if err != nil {
				log.Warnf("%s[%s]: %v", reqType, correlationID, err)
				return errorReply(err)
			}
			payload = validated
		}

		log.Debugf("%s[%s]: dispatch", reqType, correlationID)
		return body(payload)
	})
}

func handlerTable(ctl *network.Controller, sm *statemachine.Manager, log netlog.Logger) map[string]handlerBody {
	return map[string]handlerBody{
		"SendMessageRequest":          handleSendMessage(ctl),
		"StartPeriodicMessageRequest": handleStartPeriodic(ctl),
		"StopPeriodicMessageRequest":  handleStopPeriodic(ctl),
		"MessageCountRequest":         handleMessageCount(ctl),
		"LastReceivedTimeRequest":     handleLastReceivedTime(ctl),
		"FetchLastReceivedRequest":    handleFetchLastReceived(ctl),
		"UpdateDataRequest":           handleUpdateData(ctl),
		"GetDataRequest":              handleGetData(ctl),
		"ResetDataRequest":            handleResetData(ctl),
		"ConnectionRequest":           handleConnection(ctl),
		"RequirementStateRequest":     handleRequirementState(sm),
		"CloseNetworkRequest":         handleCloseNetwork(ctl),
		"UpdateSMPropertyRequest":     handleUpdateSMProperty(sm),
		"UpdateGlobalVariable":        handleUpdateGlobalVariable(sm),
	}
}

func handleSendMessage(ctl *network.Controller) handlerBody {
	return func(payload map[string]any) signal.Reply {
		if err := ctl.SendMessage(str(payload, "message"), str(payload, "node")); err != nil {
			return errorReply(err)
		}
		return success()
	}
}

func handleStartPeriodic(ctl *network.Controller) handlerBody {
	return func(payload map[string]any) signal.Reply {
		interval := time.Duration(number(payload, "interval") * float64(time.Second))
		if err := ctl.StartPeriodic(str(payload, "message"), str(payload, "node"), interval); err != nil {
			return errorReply(err)
		}
		return success()
	}
}

func handleStopPeriodic(ctl *network.Controller) handlerBody {
	return func(payload map[string]any) signal.Reply {
		if err := ctl.StopPeriodic(str(payload, "message"), str(payload, "node")); err != nil {
			return errorReply(err)
		}
		return success()
	}
}

func handleMessageCount(ctl *network.Controller) handlerBody {
	return func(payload map[string]any) signal.Reply {
		w, err := ctl.GetMessageWrap(str(payload, "message"), str(payload, "node"))
		if err != nil {
			return errorReply(err)
		}
		c, ok := w.(counterWrapper)
		if !ok {
			return errorReply(&NeverReceivedMessage{Message: str(payload, "message")})
		}
		return envelope("MessageCountReply", map[string]any{"count": c.Counter()})
	}
}

func handleLastReceivedTime(ctl *network.Controller) handlerBody {
	return func(payload map[string]any) signal.Reply {
		message := str(payload, "message")
		w, err := ctl.GetMessageWrap(message, str(payload, "node"))
		if err != nil {
			return errorReply(err)
		}
		t, ok := w.(lastTimeWrapper)
		if !ok {
			return errorReply(&NeverReceivedMessage{Message: message})
		}
		last := t.LastTime()
		if last < 0 {
			return errorReply(&NeverReceivedMessage{Message: message})
		}
		return envelope("LastReceivedTimeReply", map[string]any{"time": last})
	}
}

func handleFetchLastReceived(ctl *network.Controller) handlerBody {
	return func(payload map[string]any) signal.Reply {
		message := str(payload, "message")
		n := intOf(payload, "number")
		w, err := ctl.GetMessageWrap(message, str(payload, "node"))
		if err != nil {
			return errorReply(err)
		}
		fetcher, ok := w.(lastNWrapper)
		if !ok {
			return errorReply(&ErrorFetchLastReceived{Message: message, Requested: n})
		}
		values, err := fetcher.Last(n)
		if err != nil {
			return errorReply(&ErrorFetchLastReceived{Message: message, Requested: n})
		}
		return envelope("FetchLastReceivedReply", map[string]any{"messages": values})
	}
}

func handleUpdateData(ctl *network.Controller) handlerBody {
	return func(payload map[string]any) signal.Reply {
		node := str(payload, "node")
		glitch := boolean(payload, "glitch")
		for path, value := range dataMap(payload, "data") {
			if err := ctl.UpdateData(path, value, node, glitch); err != nil {
				return errorReply(err)
			}
		}
		return success()
	}
}

func handleGetData(ctl *network.Controller) handlerBody {
	return func(payload map[string]any) signal.Reply {
		node := str(payload, "node")
		glitch := boolean(payload, "glitch")
		result := make(map[string]any)
		for _, path := range stringList(payload, "paths") {
			v, err := ctl.GetData(path, node, glitch, true, true)
			if err != nil {
				return errorReply(err)
			}
			result[path] = v
		}
		return envelope("GetDataReply", map[string]any{"data": result})
	}
}

func handleResetData(ctl *network.Controller) handlerBody {
	return func(payload map[string]any) signal.Reply {
		if err := ctl.ResetData(str(payload, "node"), stringList(payload, "messages")); err != nil {
			return errorReply(err)
		}
		return success()
	}
}

func handleConnection(ctl *network.Controller) handlerBody {
	return func(payload map[string]any) signal.Reply {
		excludeControl := true
		if _, given := payload["exclude_control"]; given {
			excludeControl = boolean(payload, "exclude_control")
		}

		connected := ctl.GetConnectionResult(excludeControl)
		if boolean(payload, "wait") {
			for i := 0; !connected && i < connectionPollBudget; i++ {
				time.Sleep(connectionPollInterval)
				connected = ctl.GetConnectionResult(excludeControl)
			}
		}
		return envelope("ConnectionReply", map[string]any{"connected": connected})
	}
}

func handleRequirementState(sm *statemachine.Manager) handlerBody {
	return func(payload map[string]any) signal.Reply {
		state := sm.Requirements.State(str(payload, "name"))
		return envelope("RequirementStateReply", map[string]any{"state": state.String()})
	}
}

func handleCloseNetwork(ctl *network.Controller) handlerBody {
	return func(map[string]any) signal.Reply {
		if err := ctl.Stop(); err != nil {
			return errorReply(err)
		}
		return success()
	}
}

func handleUpdateSMProperty(sm *statemachine.Manager) handlerBody {
	return func(payload map[string]any) signal.Reply {
		if err := sm.SetProperty(str(payload, "machine"), str(payload, "property"), payload["value"]); err != nil {
			return errorReply(err)
		}
		return success()
	}
}

func handleUpdateGlobalVariable(sm *statemachine.Manager) handlerBody {
	return func(payload map[string]any) signal.Reply {
		name := str(payload, "name")
		if err := sm.Globals.Update(name, payload["value"]); err != nil {
			return errorReply(&UpdateGlobalVariableError{Name: name})
		}
		return success()
	}
}
