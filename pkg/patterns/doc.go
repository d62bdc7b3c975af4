// Package patterns 提供可复用的设计模式基础构件
//
// 包含五种构件，所有小游戏都建立在它们之上：
//   - Subject / Observer：观察者注册表，按挂载顺序同步广播
//   - Singletons：按键管理的单例注册表，每个键同时最多存在一个实例
//   - Holder：策略持有者，执行时总是委托给当前持有的策略
//   - Wrap / Decorated：装饰器链，先向内委托再向外叠加
//   - Factory：按类型标签创建产品并记录创建历史
//
// 注册表均为显式对象，由调用方持有并在测试之间重置，不使用包级可变状态。
package patterns
