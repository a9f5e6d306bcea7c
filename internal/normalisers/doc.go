// Package normalisers holds JobNormaliser implementations that turn raw
// posting text into cleaned documents. jobtext strips markup, boilerplate
// and redundant whitespace.
package normalisers
