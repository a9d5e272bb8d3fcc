package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/scott-cotton/cli"

	"github.com/quantfold/mdx"
	"github.com/quantfold/mdx/decode"
)

// loadElement reads one JSON payload, "-" meaning stdin, and builds its
// element tree.
func loadElement(cfg *MainConfig, arg string) (mdx.Element, error) {
	var r io.Reader
	if arg == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return mdx.Element{}, fmt.Errorf("error opening %s: %w", arg, err)
		}
		defer f.Close()
		r = f
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return mdx.Element{}, err
	}
	el, err := mdx.NewTestElement(cfg.rootName(), body)
	if err != nil {
		return mdx.Element{}, fmt.Errorf("error building element from %s: %w", arg, err)
	}
	return el, nil
}

func eachArg(cfg *MainConfig, args []string, fn func(arg string, el mdx.Element) error) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		el, err := loadElement(cfg, arg)
		if err != nil {
			return err
		}
		if err := fn(arg, el); err != nil {
			return err
		}
	}
	return nil
}

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return eachArg(cfg.MainConfig, args, func(_ string, el mdx.Element) error {
		return mdx.Fprint(cc.Out, el, cfg.colors())
	})
}

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a dotted field path", cli.ErrUsage)
	}
	path := strings.Split(args[0], ".")
	return eachArg(cfg.MainConfig, args[1:], func(arg string, el mdx.Element) error {
		cur := el
		for _, field := range path {
			next, err := cur.GetElement(field)
			if err != nil {
				return fmt.Errorf("error querying %s with %s: %w", arg, args[0], err)
			}
			cur = next
		}
		return mdx.Fprint(cc.Out, cur, cfg.colors())
	})
}

func decodeCmd(cfg *DecodeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Decode.Parse(cc, args)
	if err != nil {
		cfg.Decode.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return eachArg(cfg.MainConfig, args, func(arg string, el mdx.Element) error {
		var v any
		if err := decode.FromElement(el, &v); err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		enc := json.NewEncoder(cc.Out)
		if cfg.Indent {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(v)
	})
}
