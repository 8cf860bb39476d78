// Package htmlx 是对 golang.org/x/net/html 的简单封装, 只覆盖抓取个人主页所需的
// 标签/类名/属性匹配.
package htmlx

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Matcher 节点匹配条件
type Matcher func(n *html.Node) bool

// Parse 解析 HTML 文档或片段
func Parse(body []byte) (*html.Node, error) {
	return html.Parse(bytes.NewReader(body))
}

// Element 匹配标签名及全部附加条件
func Element(tag string, conds ...Matcher) Matcher {
	a := atom.Lookup([]byte(tag))
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		if a != 0 {
			if n.DataAtom != a {
				return false
			}
		} else if n.Data != tag {
			return false
		}
		for _, c := range conds {
			if !c(n) {
				return false
			}
		}
		return true
	}
}

// Class 要求包含全部给定类名
func Class(classes ...string) Matcher {
	return func(n *html.Node) bool {
		v, _ := Attr(n, "class")
		have := strings.Fields(v)
		for _, c := range classes {
			found := false
			for _, h := range have {
				if h == c {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
}

// AttrEq 属性等于给定值
func AttrEq(key, value string) Matcher {
	return func(n *html.Node) bool {
		v, ok := Attr(n, key)
		return ok && v == value
	}
}

// HasAttr 存在属性
func HasAttr(keys ...string) Matcher {
	return func(n *html.Node) bool {
		for _, k := range keys {
			if _, ok := Attr(n, k); !ok {
				return false
			}
		}
		return true
	}
}

// Attr 读取属性
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// FindAll 深度优先查找全部匹配节点, 保持文档顺序
func FindAll(root *html.Node, m Matcher) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if m(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// FindIn 在匹配 scope 的节点后代中查找, 相当于 css 的后代选择器
func FindIn(root *html.Node, scope, m Matcher) []*html.Node {
	var out []*html.Node
	seen := make(map[*html.Node]struct{})
	for _, s := range FindAll(root, scope) {
		for c := s.FirstChild; c != nil; c = c.NextSibling {
			for _, n := range FindAll(c, m) {
				if _, ok := seen[n]; ok {
					continue
				}
				seen[n] = struct{}{}
				out = append(out, n)
			}
		}
	}
	return out
}

// First 第一个匹配节点
func First(root *html.Node, m Matcher) *html.Node {
	if m(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := First(c, m); n != nil {
			return n
		}
	}
	return nil
}

// Text 节点内全部文本, 合并空白
func Text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
