package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/encodeous/topogen/state"
	"github.com/manifoldco/promptui"
)

func promptDefaultStr(label string, def string, validateFunc promptui.ValidateFunc) string {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
		Validate:  validateFunc,
	}
	val, err := prompt.Run()
	if err != nil {
		panic(err)
	}
	return val
}

func promptDefaultInt(label string, def int, validateFunc promptui.ValidateFunc) int {
	val := promptDefaultStr(label, strconv.Itoa(def), validateFunc)
	v, err := strconv.Atoi(val)
	if err != nil {
		panic(err)
	}
	return v
}

func promptRange(label string, def state.IntRange) state.IntRange {
	lo := promptDefaultInt(label+" min", def.Min, state.NonNegativeIntValidator)
	hi := promptDefaultInt(label+" max", max(def.Max, lo), func(s string) error {
		if err := state.NonNegativeIntValidator(s); err != nil {
			return err
		}
		if v, _ := strconv.Atoi(s); v < lo {
			return fmt.Errorf("must not be below %d", lo)
		}
		return nil
	})
	return state.IntRange{Min: lo, Max: hi}
}

func promptYN(prefix string, def bool) bool {
	choose := promptui.Select{
		Label:     prefix,
		Items:     []string{"Yes", "No"},
		Size:      2,
		CursorPos: 0,
	}
	if !def {
		choose.CursorPos = 1
	}
	run, _, err := choose.Run()
	if err != nil {
		return false
	}
	return run == 0
}

func promptTopology(def state.TopologyKind) state.TopologyKind {
	choose := promptui.Select{
		Label: "Topology",
		Items: []state.TopologyKind{state.Mesh, state.Star},
		Size:  2,
	}
	if def == state.Star {
		choose.CursorPos = 1
	}
	_, val, err := choose.Run()
	if err != nil {
		panic(err)
	}
	kind, err := state.ParseTopologyKind(val)
	if err != nil {
		panic(err)
	}
	return kind
}

func safeSaveFile(path string, name string) string {
Save:
	path, err := filepath.Abs(path)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Where do you want to save the %s?\n", name)
	path = promptDefaultStr("path", path, state.PathValidator)

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Warning: %s file already exists: %s, do you want to overwrite it?\n", name, path)
		res := promptYN("Overwrite?", false)
		if !res {
			goto Save
		}
	}
	return path
}
