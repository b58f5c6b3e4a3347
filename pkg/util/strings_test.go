package util

import (
	"reflect"
	"testing"
)

func TestStr2List(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"zh-CN,zh,en", []string{"zh-CN", "zh", "en"}},
		{" en , en , ja ", []string{"en", "ja"}},
		{",,,", []string{}},
	}

	for _, tt := range tests {
		if got := Str2List(tt.in, ","); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Str2List(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
