package utils

// Find 按ID查找数据
// 功能：ids为空时返回全部数据；不存在的ID记入failedIDs，其余按ids顺序返回
func Find[T any](dataMap map[int32]T, data []T, ids []int32) (found []T, failedIDs []int32) {
	if len(ids) == 0 {
		return data, nil
	}
	found = make([]T, 0, len(ids))
	for _, id := range ids {
		if d, ok := dataMap[id]; ok {
			found = append(found, d)
		} else {
			failedIDs = append(failedIDs, id)
		}
	}
	return
}
