package matrix

import "singular-attend/backend/internal/model"

// OnSiteCode 现场办公短码，为循环起点与"Total On Site"统计口径
const OnSiteCode = "OS"

// NextCategory 计算状态循环中的下一个类别。
//
// 规则：
//  1. 当前无状态：优先返回短码为 OS 的启用类别，否则返回启用序列的第一个；
//     无任何启用类别时返回 nil
//  2. 当前短码不在启用序列中（指派后类别被停用）：从第一个启用类别重新开始
//  3. 否则前进到 (i+1) mod (N+1)；索引 N 即"清空"哨兵，返回 nil
//
// 返回 nil 时调用方须删除该员工当日的考勤记录（而不是写入空类别）。
// 封锁日永远不应调用本函数，由调用方先行判定。
func NextCategory(currentCode string, active []model.Category) *model.Category {
	if currentCode == "" {
		for i := range active {
			if active[i].Code == OnSiteCode {
				return &active[i]
			}
		}
		if len(active) > 0 {
			return &active[0]
		}
		return nil
	}

	idx := -1
	for i := range active {
		if active[i].Code == currentCode {
			idx = i
			break
		}
	}
	if idx == -1 {
		// 类别已停用：历史记录保留，但循环从头开始
		if len(active) > 0 {
			return &active[0]
		}
		return nil
	}

	next := (idx + 1) % (len(active) + 1)
	if next == len(active) {
		return nil // 清空哨兵
	}
	return &active[next]
}
