package effects

import (
	"testing"
)

func triggerN(b *ShockwaveBuffer, n int) {
	for i := 0; i < n; i++ {
		// 用触发序号编码振幅，便于识别
		b.Trigger(Vec3{X: float64(i)}, float64(i+1), 1.0, 1.0, float64(i))
	}
}

// TestInitializeUpload 初始化后所有槽位为未激活哨兵值
func TestInitializeUpload(t *testing.T) {
	b := NewShockwaveBuffer()
	triggerN(b, 4)
	b.Initialize()

	p := b.Params()
	for i := 0; i < MaxShockwaves; i++ {
		if p.StartTimes[i] != -1 || p.EndTimes[i] != -1 {
			t.Errorf("slot %d: expected start/end = -1, got %v/%v", i, p.StartTimes[i], p.EndTimes[i])
		}
		if p.Amplitudes[i] != 0 {
			t.Errorf("slot %d: expected amplitude 0, got %v", i, p.Amplitudes[i])
		}
	}
	if b.NextSlot() != 0 {
		t.Errorf("Expected cursor reset to 0, got %d", b.NextSlot())
	}
}

// TestTriggerWithinCapacity N <= 10 次触发：每个实例位于其插入槽位
func TestTriggerWithinCapacity(t *testing.T) {
	for n := 1; n <= MaxShockwaves; n++ {
		b := NewShockwaveBuffer()
		triggerN(b, n)

		p := b.Params()
		for i := 0; i < MaxShockwaves; i++ {
			if i < n {
				if p.Amplitudes[i] != float64(i+1) {
					t.Errorf("n=%d slot %d: expected amplitude %d, got %v", n, i, i+1, p.Amplitudes[i])
				}
				if p.StartTimes[i] != float64(i) || p.EndTimes[i] != float64(i)+1 {
					t.Errorf("n=%d slot %d: unexpected interval %v..%v", n, i, p.StartTimes[i], p.EndTimes[i])
				}
			} else if p.StartTimes[i] != -1 {
				t.Errorf("n=%d slot %d: expected inactive slot", n, i)
			}
		}
	}
}

// TestTriggerOverflowEvictsOldest 超出容量时按插入顺序覆盖
func TestTriggerOverflowEvictsOldest(t *testing.T) {
	tests := []int{11, 15, 20, 23, 37}

	for _, n := range tests {
		b := NewShockwaveBuffer()
		var lastSlot int
		for i := 0; i < n; i++ {
			lastSlot = b.Trigger(Vec3{}, float64(i+1), 1.0, 1.0, float64(i))
		}

		expectedSlot := (n - 1) % MaxShockwaves
		if lastSlot != expectedSlot {
			t.Errorf("n=%d: expected trigger #%d in slot %d, got %d", n, n, expectedSlot, lastSlot)
		}

		p := b.Params()
		if p.Amplitudes[expectedSlot] != float64(n) {
			t.Errorf("n=%d: expected latest amplitude %d in slot %d, got %v", n, n, expectedSlot, p.Amplitudes[expectedSlot])
		}

		// 被覆盖的前一个占用者（触发序号 n-10）不应再出现
		evicted := float64(n - MaxShockwaves)
		for i := 0; i < MaxShockwaves; i++ {
			if p.Amplitudes[i] == evicted {
				t.Errorf("n=%d: evicted amplitude %v still present in slot %d", n, evicted, i)
			}
		}

		// 缓冲区恰好包含最近的 10 个实例
		seen := make(map[float64]bool)
		for i := 0; i < MaxShockwaves; i++ {
			seen[p.Amplitudes[i]] = true
		}
		for k := n - MaxShockwaves + 1; k <= n; k++ {
			if !seen[float64(k)] {
				t.Errorf("n=%d: expected trigger #%d to be present", n, k)
			}
		}
	}
}

// TestEvictionIgnoresExpiry 覆盖不优先选择已过期槽位
func TestEvictionIgnoresExpiry(t *testing.T) {
	b := NewShockwaveBuffer()

	// 槽位 0 长期有效，其余很快过期
	b.Trigger(Vec3{}, 1, 1, 1000, 0)
	for i := 1; i < MaxShockwaves; i++ {
		b.Trigger(Vec3{}, 1, 1, 0.1, 0)
	}

	slot := b.Trigger(Vec3{X: 5}, 2, 1, 1, 50)
	if slot != 0 {
		t.Errorf("Expected strict insertion-order eviction into slot 0, got %d", slot)
	}
}

func TestActiveCount(t *testing.T) {
	b := NewShockwaveBuffer()
	if b.ActiveCount(0) != 0 {
		t.Fatalf("Fresh buffer must have no active shockwaves")
	}
	// 即使 now == -1 也不应把哨兵槽位算作有效
	if b.ActiveCount(-1) != 0 {
		t.Fatalf("Sentinel slots must never count as active")
	}

	b.Trigger(Vec3{}, 1, 1, 1.0, 0)  // [0, 1]
	b.Trigger(Vec3{}, 1, 1, 2.0, 0)  // [0, 2]
	b.Trigger(Vec3{}, 1, 1, 1.0, 10) // [10, 11]

	cases := []struct {
		now      float64
		expected int
	}{
		{0.5, 2},
		{1.0, 2},
		{1.5, 1},
		{5, 0},
		{10.5, 1},
		{11.01, 0},
	}
	for _, c := range cases {
		if got := b.ActiveCount(c.now); got != c.expected {
			t.Errorf("now=%v: expected %d active, got %d", c.now, c.expected, got)
		}
	}
}

func TestParamsIsSnapshot(t *testing.T) {
	b := NewShockwaveBuffer()
	p := b.Params()
	b.Trigger(Vec3{X: 1, Y: 2, Z: 3}, 4, 5, 6, 7)

	if p.Amplitudes[0] != 0 {
		t.Error("Previously pulled params must not change after a trigger")
	}

	p2 := b.Params()
	if p2.Positions[0] != (Vec3{X: 1, Y: 2, Z: 3}) || p2.Speeds[0] != 5 || p2.EndTimes[0] != 13 {
		t.Errorf("Unexpected published slot 0: %+v", p2)
	}
}

func TestEveryMutationUploads(t *testing.T) {
	b := NewShockwaveBuffer()
	base := b.UploadCount()

	triggerN(b, 3)
	b.Initialize()

	if got := b.UploadCount() - base; got != 4 {
		t.Errorf("Expected 4 uploads, got %d", got)
	}
}

func TestShockwaveEffectPlayUsesDefaults(t *testing.T) {
	e := NewShockwaveEffect(2.5, 3.0, 0.75)
	e.Initialize()
	e.Update(12.0)

	slot := e.Play(Vec3{X: 10, Y: 20})
	if slot != 0 {
		t.Fatalf("Expected slot 0, got %d", slot)
	}

	inst := e.Buffer().Instances()[0]
	if inst.Amplitude != 2.5 || inst.Speed != 3.0 {
		t.Errorf("Unexpected defaults: %+v", inst)
	}
	if inst.StartTime != 12.0 || inst.EndTime != 12.75 {
		t.Errorf("Expected interval [12, 12.75], got [%v, %v]", inst.StartTime, inst.EndTime)
	}
}
