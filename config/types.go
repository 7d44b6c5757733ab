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

// Package config loads the YAML inputs that describe a network: the
// node/message topology, the control descriptor, and the default/glitch
// payload templates, plus a watcher that reloads payload files live.
package config

// MessageSpec is one message entry in a node's inline catalog.
type MessageSpec struct {
	Direction      string  `yaml:"direction" mapstructure:"direction"`
	Periodic       bool    `yaml:"periodic" mapstructure:"periodic"`
	Interval       float64 `yaml:"interval" mapstructure:"interval"`
	Reply          string  `yaml:"reply" mapstructure:"reply"`
	ExcludeFromLog bool    `yaml:"exclude_from_log" mapstructure:"exclude_from_log"`
}

// NodeSpec is one entry of the network file's top-level node_name map.
// Control is true for the single control node, which gets an empty message
// catalog: its inline Messages map is not used for the catalog, and no
// catalog is built from the control descriptor either.
type NodeSpec struct {
	Protocol string                 `yaml:"protocol" mapstructure:"protocol"`
	Role     string                 `yaml:"role" mapstructure:"role"`
	Host     string                 `yaml:"host" mapstructure:"host"`
	Port     int                    `yaml:"port" mapstructure:"port"`
	LogLevel string                 `yaml:"log_level" mapstructure:"log_level"`
	Control  bool                   `yaml:"control" mapstructure:"control"`
	Messages map[string]MessageSpec `yaml:"messages" mapstructure:"messages"`
}

// NetworkSpec is the full network file: node name -> NodeSpec.
type NetworkSpec map[string]NodeSpec

// payloadSpecFile is the on-disk shape of one control descriptor entry,
// nesting PayloadSpec's fields under a "payload" key.
type payloadSpecFile struct {
	Payload struct {
		Required []string       `yaml:"required" mapstructure:"required"`
		Optional map[string]any `yaml:"optional" mapstructure:"optional"`
	} `yaml:"payload" mapstructure:"payload"`
}

// descriptorFile is the on-disk shape of the control descriptor file:
// request_type -> {payload: {...}}.
type descriptorFile map[string]payloadSpecFile

// payloadFile is the on-disk shape of a default/glitch payload file:
// message_name -> nested map fed to the interface's decode.
type payloadFile map[string]map[string]any
