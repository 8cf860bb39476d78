// Package jsonx 提供基于 gjson 的容错字段读取.
//
// Reader 在读取过程中只记录第一个缺失/类型错误, 调用方在组装完实体后
// 通过 Err 一次性检查, 避免逐字段判断.
package jsonx

import (
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	pkgErrors "forgekit/pkg/errors"
)

type state struct {
	err error
}

// Reader 原始 JSON 节点读取器
type Reader struct {
	entity string
	prefix string
	node   gjson.Result
	st     *state
}

// Parse 解析单个 JSON 文档
func Parse(entity string, data []byte) (*Reader, error) {
	if !gjson.ValidBytes(data) {
		return nil, pkgErrors.Malformed("%s: 响应不是合法的JSON", entity)
	}
	return From(entity, gjson.ParseBytes(data)), nil
}

// ParseArray 解析 JSON 数组文档
func ParseArray(entity string, data []byte) ([]*Reader, error) {
	r, err := Parse(entity, data)
	if err != nil {
		return nil, err
	}
	if !r.node.IsArray() {
		return nil, pkgErrors.Malformed("%s: 响应应为数组", entity)
	}
	return r.Items(), nil
}

// From 包装已解析的节点
func From(entity string, node gjson.Result) *Reader {
	return &Reader{entity: entity, node: node, st: &state{}}
}

// Err 返回读取过程中的第一个错误
func (r *Reader) Err() error {
	return r.st.err
}

// Fail 记录自定义错误, 已有错误时忽略
func (r *Reader) Fail(format string, args ...any) {
	if r.st.err == nil {
		r.st.err = pkgErrors.Malformed(r.entity+": "+format, args...)
	}
}

func (r *Reader) missing(path, want string) {
	r.Fail("字段 %s 缺失或不是%s", r.full(path), want)
}

func (r *Reader) full(path string) string {
	if r.prefix == "" {
		return path
	}
	if path == "" {
		return r.prefix
	}
	return r.prefix + "." + path
}

func (r *Reader) get(path string) gjson.Result {
	if path == "" {
		return r.node
	}
	return r.node.Get(path)
}

// Raw 返回底层节点
func (r *Reader) Raw() gjson.Result {
	return r.node
}

// Exists 字段存在且不为 null
func (r *Reader) Exists(path string) bool {
	v := r.get(path)
	return v.Exists() && v.Type != gjson.Null
}

// Str 必需字符串字段, 允许为空串
func (r *Reader) Str(path string) string {
	v := r.get(path)
	if v.Type != gjson.String {
		r.missing(path, "字符串")
		return ""
	}
	return v.String()
}

// NonEmpty 必需且非空的字符串字段
func (r *Reader) NonEmpty(path string) string {
	v := r.get(path)
	if v.Type != gjson.String || v.String() == "" {
		r.missing(path, "非空字符串")
		return ""
	}
	return v.String()
}

// OptStr 可选字符串, 缺失/null/空串均视为无值
func (r *Reader) OptStr(path string) *string {
	v := r.get(path)
	if v.Type != gjson.String || v.String() == "" {
		return nil
	}
	s := v.String()
	return &s
}

// StrOr 字符串字段, 缺失或为空时返回 def
func (r *Reader) StrOr(path, def string) string {
	if s := r.OptStr(path); s != nil {
		return *s
	}
	return def
}

// Uint 计数字段, 缺失或非数值时为 0
func (r *Reader) Uint(path string) uint64 {
	v := r.get(path)
	if v.Type != gjson.Number || v.Num < 0 {
		return 0
	}
	return v.Uint()
}

// ReqUint 必需的数值字段
func (r *Reader) ReqUint(path string) uint64 {
	v := r.get(path)
	if v.Type != gjson.Number || v.Num < 0 {
		r.missing(path, "非负数值")
		return 0
	}
	return v.Uint()
}

// NumberString 数值或字符串形式的编号, 统一为字符串
func (r *Reader) NumberString(path string) string {
	v := r.get(path)
	switch v.Type {
	case gjson.Number:
		return strconv.FormatUint(v.Uint(), 10)
	case gjson.String:
		if v.String() != "" {
			return v.String()
		}
	}
	r.missing(path, "编号")
	return ""
}

// Bool 布尔字段, 缺失时为 false
func (r *Reader) Bool(path string) bool {
	return r.get(path).Type == gjson.True
}

// ReqBool 必需的布尔字段
func (r *Reader) ReqBool(path string) bool {
	v := r.get(path)
	if v.Type != gjson.True && v.Type != gjson.False {
		r.missing(path, "布尔值")
		return false
	}
	return v.Type == gjson.True
}

// Time 必需的 RFC3339 时间
func (r *Reader) Time(path string) time.Time {
	v := r.get(path)
	if v.Type != gjson.String {
		r.missing(path, "时间")
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, v.String())
	if err != nil {
		r.Fail("字段 %s 时间格式错误: %s", r.full(path), v.String())
		return time.Time{}
	}
	return t
}

// OptTime 可选的 RFC3339 时间, 存在但格式错误时记录错误
func (r *Reader) OptTime(path string) *time.Time {
	v := r.get(path)
	if v.Type != gjson.String || v.String() == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v.String())
	if err != nil {
		r.Fail("字段 %s 时间格式错误: %s", r.full(path), v.String())
		return nil
	}
	return &t
}

// Object 必需的对象子节点, 与父节点共享错误状态
func (r *Reader) Object(path string) *Reader {
	v := r.get(path)
	if !v.IsObject() {
		r.missing(path, "对象")
	}
	return &Reader{entity: r.entity, prefix: r.full(path), node: v, st: r.st}
}

// OptObject 可选对象, 缺失或为 null 时返回 nil
func (r *Reader) OptObject(path string) *Reader {
	v := r.get(path)
	if !v.IsObject() {
		return nil
	}
	return &Reader{entity: r.entity, prefix: r.full(path), node: v, st: r.st}
}

// Array 数组字段, 缺失或 null 视为空数组
func (r *Reader) Array(path string) []*Reader {
	v := r.get(path)
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	if !v.IsArray() {
		r.missing(path, "数组")
		return nil
	}
	return (&Reader{entity: r.entity, prefix: r.full(path), node: v, st: r.st}).Items()
}

// Items 当前节点的数组元素
func (r *Reader) Items() []*Reader {
	arr := r.node.Array()
	items := make([]*Reader, 0, len(arr))
	for i, v := range arr {
		items = append(items, &Reader{
			entity: r.entity,
			prefix: r.full(strconv.Itoa(i)),
			node:   v,
			st:     r.st,
		})
	}
	return items
}

// Entries 当前对象的键值对, 保持原始顺序
func (r *Reader) Entries() ([]string, []*Reader) {
	if !r.node.IsObject() {
		r.missing("", "对象")
		return nil, nil
	}
	var (
		keys   []string
		values []*Reader
	)
	r.node.ForEach(func(key, value gjson.Result) bool {
		keys = append(keys, key.String())
		values = append(values, &Reader{
			entity: r.entity,
			prefix: r.full(escape(key.String())),
			node:   value,
			st:     r.st,
		})
		return true
	})
	return keys, values
}

func escape(key string) string {
	return strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`).Replace(key)
}

// Set 在原始 JSON 中写入字段, 用于补全信息后再交给转换函数
func Set(data []byte, path string, value any) ([]byte, error) {
	out, err := sjson.SetBytes(data, path, value)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeMalformedResponse, "写入字段失败: "+path, err)
	}
	return out, nil
}

// SetRaw 写入一段已编码的 JSON
func SetRaw(data []byte, path string, raw []byte) ([]byte, error) {
	out, err := sjson.SetRawBytes(data, path, raw)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeMalformedResponse, "写入字段失败: "+path, err)
	}
	return out, nil
}

// DecodeList 将数组文档逐项转换, 任一元素失败则整体失败
func DecodeList[T any](entity string, data []byte, convert func(*Reader) (*T, error)) ([]T, error) {
	items, err := ParseArray(entity, data)
	if err != nil {
		return nil, err
	}
	result := make([]T, 0, len(items))
	for _, item := range items {
		v, err := convert(From(entity, item.Raw()))
		if err != nil {
			return nil, err
		}
		result = append(result, *v)
	}
	return result, nil
}

// Decode 转换单个文档
func Decode[T any](entity string, data []byte, convert func(*Reader) (*T, error)) (*T, error) {
	r, err := Parse(entity, data)
	if err != nil {
		return nil, err
	}
	return convert(r)
}
