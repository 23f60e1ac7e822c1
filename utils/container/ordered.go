package container

// OrderedMap 保持插入顺序的映射
// 功能：按键查找的同时保证遍历顺序与插入顺序一致
// 说明：不支持删除，适用于注册后一直存在的对象（例如环境中的车辆）
type OrderedMap[K comparable, V any] struct {
	index map[K]int // 键->在keys/values中的下标
	keys  []K
	vals  []V
}

// NewOrderedMap 创建空的有序映射
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		index: make(map[K]int),
		keys:  make([]K, 0),
		vals:  make([]V, 0),
	}
}

// Set 写入键值对，已存在的键保持原有位置
func (m *OrderedMap[K, V]) Set(key K, value V) {
	if i, ok := m.index[key]; ok {
		m.vals[i] = value
		return
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, value)
}

// Get 按键读取
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	if i, ok := m.index[key]; ok {
		return m.vals[i], true
	}
	var zero V
	return zero, false
}

// Ptr 获取值的指针，用于原地修改，不存在时返回nil
// 说明：后续的Set可能导致底层数组扩容，指针不应长期持有
func (m *OrderedMap[K, V]) Ptr(key K) *V {
	if i, ok := m.index[key]; ok {
		return &m.vals[i]
	}
	return nil
}

// Has 判断键是否存在
func (m *OrderedMap[K, V]) Has(key K) bool {
	_, ok := m.index[key]
	return ok
}

// Len 元素个数
func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

// Keys 按插入顺序返回所有键
func (m *OrderedMap[K, V]) Keys() []K {
	return m.keys
}

// Values 按插入顺序返回所有值
func (m *OrderedMap[K, V]) Values() []V {
	return m.vals
}

// Range 按插入顺序遍历，f返回false时停止
func (m *OrderedMap[K, V]) Range(f func(key K, value V) bool) {
	for i, k := range m.keys {
		if !f(k, m.vals[i]) {
			return
		}
	}
}
