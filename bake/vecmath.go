package bake

import "math"

func vec3At(flat []float32, i uint32) [3]float32 {
	return [3]float32{flat[i*3], flat[i*3+1], flat[i*3+2]}
}

func vec2At(flat []float32, i uint32) [2]float32 {
	return [2]float32{flat[i*2], flat[i*2+1]}
}

func add3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func scaleVec3(v [3]float32, s float32) [3]float32 {
	return [3]float32{v[0] * s, v[1] * s, v[2] * s}
}

func dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func length3(v [3]float32) float32 {
	return float32(math.Sqrt(float64(dot3(v, v))))
}

func normalize3(v [3]float32) [3]float32 {
	l := length3(v)
	if l == 0 {
		return v
	}
	return scaleVec3(v, 1/l)
}
