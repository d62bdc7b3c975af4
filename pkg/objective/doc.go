// Package objective 关卡目标评估
//
// 关卡目标是声明式的：类型标签、目标值和可选的限定词（属性名或动作子类型）。
// 每个类型标签解析为一种评估方式：
//
//   - 阈值型：从小游戏当前快照中读取数值，与目标值比较（>=）
//   - 计数型：读取小游戏在本次关卡尝试中维护的单调计数器
//
// Evaluate 是纯函数，不关心快照来自哪个小游戏；重复评估结果不变。
package objective
