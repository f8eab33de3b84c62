// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package link

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// # HTML Link Filter

/*
ConvertLinks rewrites typed references in anchor hrefs of an HTML fragment.

Description: Every <a href="type/id"> whose type is registered is replaced by
the resolved URL. Anchors whose target cannot be resolved are unwrapped: the
anchor's sole text content is kept, anything else is removed entirely. Other
hrefs are left untouched.

Parameters:
  - context: context.Context
  - registry: *Registry
  - fragment: string (HTML body fragment)

Returns:
  - string: The rewritten fragment
  - error: HTML parse or render failures
*/
func ConvertLinks(context context.Context, registry *Registry, fragment string) (string, error) {
	body := &html.Node{Type: html.ElementNode, Data: atom.Body.String(), DataAtom: atom.Body}

	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", fmt.Errorf("link: parse html fragment: %w", err)
	}

	// Re-parent the fragment so top-level anchors can be replaced in place.
	for _, node := range nodes {
		body.AppendChild(node)
	}

	pattern := registry.ObjectPattern()

	for _, anchor := range collectAnchors(body) {
		href, index := attribute(anchor, "href")
		if href == "" {
			continue
		}

		match := pattern.FindStringSubmatch(href)
		if match == nil {
			continue
		}

		url, err := registry.Resolve(context, match[1], match[2])
		if err != nil {
			if !errors.Is(err, ErrResolve) {
				return "", err
			}
			unwrap(anchor)
			continue
		}

		anchor.Attr[index].Val = url
	}

	var buffer bytes.Buffer
	for child := body.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&buffer, child); err != nil {
			return "", fmt.Errorf("link: render html fragment: %w", err)
		}
	}

	return buffer.String(), nil
}

// collectAnchors returns all <a> elements below root in document order.
func collectAnchors(root *html.Node) []*html.Node {
	var anchors []*html.Node

	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.DataAtom == atom.A {
			anchors = append(anchors, node)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	return anchors
}

// attribute returns the value and index of the named attribute, or "" and -1.
func attribute(node *html.Node, name string) (string, int) {
	for i, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return attr.Val, i
		}
	}
	return "", -1
}

// unwrap replaces anchor with its sole text content, or removes it.
func unwrap(anchor *html.Node) {
	parent := anchor.Parent
	if parent == nil {
		return
	}

	if text, ok := soleText(anchor); ok && text != "" {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text}, anchor)
	}
	parent.RemoveChild(anchor)
}

// soleText follows single-child chains down to a text node.
func soleText(node *html.Node) (string, bool) {
	for {
		child := node.FirstChild
		if child == nil || child.NextSibling != nil {
			return "", false
		}
		if child.Type == html.TextNode {
			return child.Data, true
		}
		if child.Type != html.ElementNode {
			return "", false
		}
		node = child
	}
}
