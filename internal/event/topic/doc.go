// Package topic names bus events and matches them against subscription
// patterns. In a pattern "*" stands for one segment and "**" for any
// number, including none:
//
//	gesture.swipe.*   gesture.swipe.left, gesture.swipe.up
//	gesture.**        gesture.tap and every swipe
//	**                everything
package topic
