package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolverFlag(name string) *kong.Flag {
	return &kong.Flag{Value: &kong.Value{Name: name}}
}

func TestResolve(t *testing.T) {
	input := "log_level: debug\n" +
		"log-format: text\n" +
		"keyword: fn\n" +
		"log_pretty: false\n"

	resolver, err := resolve(strings.NewReader(input))
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	for _, tt := range []struct {
		flag string
		want any
	}{
		{flag: "log-level", want: "debug"},  // underscore spelling
		{flag: "log-format", want: "text"},  // hyphen spelling
		{flag: "keyword", want: "fn"},       // engine flag
		{flag: "log-pretty", want: false},   // boolean
		{flag: "output", want: nil},         // absent
	} {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := resolver.Resolve(nil, nil, resolverFlag(tt.flag))
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.flag, err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestResolveNumbersAsStrings(t *testing.T) {
	resolver, err := resolve(strings.NewReader("retries: 3\nratio: 0.5\n"))
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	for _, tt := range []struct {
		flag string
		want string
	}{
		{flag: "retries", want: "3"},
		{flag: "ratio", want: "0.5"},
	} {
		got, err := resolver.Resolve(nil, nil, resolverFlag(tt.flag))
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", tt.flag, err)
		}

		if got != tt.want {
			t.Errorf("Resolve(%q) = %v (%T), want %q", tt.flag, got, got, tt.want)
		}
	}
}

func TestResolveEmptyConfig(t *testing.T) {
	resolver, err := resolve(strings.NewReader(""))
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	got, err := resolver.Resolve(nil, nil, resolverFlag("log-level"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got != nil {
		t.Errorf("Resolve() = %v, want nil", got)
	}
}
