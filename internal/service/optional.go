package service

import "encoding/json"

// Optional 部分更新字段，区分"未提供"与"显式置空"。
// Set=false 表示字段未出现在请求体中；Set=true 且 Value=nil 表示显式 null（清空）。
type Optional[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON 仅在字段出现时被调用，以此记录存在性
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}
