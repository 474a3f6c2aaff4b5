package main

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/xerrors"
)

var (
	flagConfig    string
	flagLogLevel  = FlagLogLevel{lvl: zerolog.InfoLevel}
	flagLogFormat = FlagLogFormat{f: "terminal"}
)

var (
	_ pflag.Value = (*FlagLogLevel)(nil)
	_ pflag.Value = (*FlagLogFormat)(nil)
)

type FlagLogLevel struct {
	lvl zerolog.Level
}

func (f FlagLogLevel) String() string {
	return f.lvl.String()
}

func (f *FlagLogLevel) Set(v string) error {
	lvl, err := zerolog.ParseLevel(v)
	if err != nil {
		return err
	}

	f.lvl = lvl

	return nil
}

func (f FlagLogLevel) Type() string {
	return "log-level"
}

type FlagLogFormat struct {
	f string
}

func (f FlagLogFormat) String() string {
	return f.f
}

func (f *FlagLogFormat) Set(v string) error {
	s := strings.ToLower(v)
	switch s {
	case "json":
	case "terminal":
	default:
		return xerrors.Errorf("invalid log format: %q", v)
	}

	f.f = s

	return nil
}

func (f FlagLogFormat) Type() string {
	return "log-format"
}
