package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bootmem/memkit/memblock"
)

// step is one scenario operation. Addresses are decimal or 0x-hex strings;
// sizes additionally accept human-readable forms like "64KB".
type step struct {
	Op    string `yaml:"op"`
	Base  string `yaml:"base,omitempty"`
	Size  string `yaml:"size,omitempty"`
	Node  *int32 `yaml:"node,omitempty"`
	Flag  string `yaml:"flag,omitempty"`
	Align string `yaml:"align,omitempty"`
}

var flagNames = map[string]memblock.Flags{
	"hotplug": memblock.FlagHotplug,
	"mirror":  memblock.FlagMirror,
	"nomap":   memblock.FlagNoMap,
	"driver":  memblock.FlagDriverManaged,
}

var replayCmd = &cobra.Command{
	Use:   "replay <scenario.yaml>",
	Short: "Replay a YAML operation scenario and dump the resulting ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var steps []step
		if err := yaml.Unmarshal(data, &steps); err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}

		l, cleanup, err := newLedger()
		if err != nil {
			return err
		}
		defer cleanup()

		for i, st := range steps {
			if err := apply(l, st); err != nil {
				return fmt.Errorf("step %d (%s): %w", i+1, st.Op, err)
			}
		}

		printInfo("%d steps applied\n", len(steps))
		l.Dump(os.Stdout)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func apply(l *memblock.Ledger, st step) error {
	switch st.Op {
	case "trim":
		align, err := parseSize(st.Align)
		if err != nil {
			return err
		}
		l.TrimMemory(align)
		return nil
	case "bottom-up":
		l.SetBottomUp(true)
		return nil
	case "top-down":
		l.SetBottomUp(false)
		return nil
	}

	base, err := parseAddr(st.Base)
	if err != nil {
		return err
	}
	size, err := parseSize(st.Size)
	if err != nil {
		return err
	}

	switch st.Op {
	case "add":
		l.Add(base, size)
	case "add-node":
		if st.Node == nil {
			return fmt.Errorf("add-node needs a node id")
		}
		flags, err := lookupFlag(st.Flag, true)
		if err != nil {
			return err
		}
		l.AddNode(base, size, memblock.NodeID(*st.Node), flags)
	case "reserve":
		l.Reserve(base, size)
	case "remove":
		l.Remove(base, size)
	case "free":
		l.Free(base, size)
	case "set-node":
		if st.Node == nil {
			return fmt.Errorf("set-node needs a node id")
		}
		l.SetNode(base, size, memblock.NodeID(*st.Node))
	case "mark":
		flag, err := lookupFlag(st.Flag, false)
		if err != nil {
			return err
		}
		switch flag {
		case memblock.FlagHotplug:
			l.MarkHotplug(base, size)
		case memblock.FlagMirror:
			l.MarkMirror(base, size)
		case memblock.FlagNoMap:
			l.MarkNoMap(base, size)
		default:
			return fmt.Errorf("flag %q cannot be marked", st.Flag)
		}
	case "clear":
		flag, err := lookupFlag(st.Flag, false)
		if err != nil {
			return err
		}
		switch flag {
		case memblock.FlagHotplug:
			l.ClearHotplug(base, size)
		case memblock.FlagNoMap:
			l.ClearNoMap(base, size)
		default:
			return fmt.Errorf("flag %q cannot be cleared", st.Flag)
		}
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return nil
}

// lookupFlag resolves a scenario flag name. When optional is true an empty
// name means no flags.
func lookupFlag(name string, optional bool) (memblock.Flags, error) {
	if name == "" {
		if optional {
			return 0, nil
		}
		return 0, fmt.Errorf("missing flag name")
	}
	f, ok := flagNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown flag %q", name)
	}
	return f, nil
}
