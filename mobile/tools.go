//go:build tools

package mobile

// gomobile bind 需要 x/mobile 出现在 go.mod 里
import _ "golang.org/x/mobile/bind"
