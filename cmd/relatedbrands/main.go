// Package main provides the relatedbrands CLI.
//
// relatedbrands computes, for every brand of a BigCommerce catalog, the brands
// that share its most common categories, and publishes the result as a static
// JSON document for the storefront widget.
//
// Usage:
//
//	relatedbrands build
//	relatedbrands deploy-widget
//	relatedbrands serve
package main

func main() {
	Execute()
}
