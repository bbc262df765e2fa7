// Package weights supplies the placeholder weights shown on connections and
// maps them to display colors.
//
// A [Source] returns one weight per connection. The diagram never trains or
// evaluates anything, so the default [Random] source draws uniform values in
// [-1, 1]; [Table] carries real values loaded from a JSON file, and
// [Constant] paints every connection the same.
//
// [Color] maps a weight to the diverging red/green scale used on screen:
//
//	red   = clamp(int(255 *  w/scale), 0, 255)
//	green = clamp(int(255 * -w/scale), 0, 255)
//
// so positive weights are red, negative weights are green, and zero is black.
package weights
