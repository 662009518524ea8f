package main

import (
	"strings"
	"testing"
)

func TestParseSteps(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{name: "default", args: nil, want: 1},
		{name: "explicit", args: []string{" 3 "}, want: 3},
		{name: "zero", args: []string{"0"}, wantErr: true},
		{name: "not a number", args: []string{"x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSteps(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("parseSteps(%v)=%d,%v want %d", tt.args, got, err, tt.want)
			}
		})
	}
}

func TestWithSSLMode(t *testing.T) {
	if got := withSSLMode("postgres://u:p@db:5432/apexgrid", true); !strings.Contains(got, "sslmode=require") {
		t.Fatalf("expected sslmode=require, got %q", got)
	}
	in := "postgres://u:p@db:5432/apexgrid?sslmode=verify-full"
	if got := withSSLMode(in, false); got != in {
		t.Fatalf("expected explicit sslmode to win, got %q", got)
	}
}
