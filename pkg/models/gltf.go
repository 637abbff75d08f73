package models

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/pixel"
)

// gltfAmbient is the ambient coefficient given to imported materials; glTF
// has no equivalent.
const gltfAmbient = 0.1

// LoadGLTFScene loads a .gltf or .glb file as a scene. Each mesh primitive
// becomes its bounding sphere with a material derived from the primitive's
// PBR factors, and KHR_lights_punctual point lights become lights. Options
// are applied after import.
func LoadGLTFScene(path string, opts ...SceneOption) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	scene, err := sceneFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	for _, opt := range opts {
		opt(scene)
	}
	return scene, nil
}

// sceneFromDocument walks the document's node hierarchy from the default
// scene's roots.
func sceneFromDocument(doc *gltf.Document) (*Scene, error) {
	docLights := documentLights(doc)
	scene := NewScene()

	var walk func(idx int, parent math3d.Mat4, depth int) error
	walk = func(idx int, parent math3d.Mat4, depth int) error {
		if idx < 0 || idx >= len(doc.Nodes) {
			return fmt.Errorf("node index %d out of range", idx)
		}
		if depth > len(doc.Nodes) {
			return fmt.Errorf("node %d: hierarchy has a cycle", idx)
		}
		node := doc.Nodes[idx]
		world := parent.Mul(nodeTransform(node))

		if node.Mesh != nil {
			if err := addMesh(doc, *node.Mesh, world, scene); err != nil {
				return fmt.Errorf("node %q: %w", node.Name, err)
			}
		}
		if l, ok := nodeLight(node, docLights); ok {
			scene.Lights = append(scene.Lights, NewLight(
				world.Translation(),
				l.IntensityOrDefault(),
				colorFromFactors(rgb1(l.ColorOrDefault())),
			))
		}
		for _, child := range node.Children {
			if err := walk(child, world, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range rootNodes(doc) {
		if err := walk(root, math3d.Identity(), 0); err != nil {
			return nil, err
		}
	}
	return scene, nil
}

// rootNodes returns the default scene's nodes, or every parentless node
// when the document declares no scenes.
func rootNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			idx = *doc.Scene
		}
		return doc.Scenes[idx].Nodes
	}
	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var roots []int
	for i, child := range isChild {
		if !child {
			roots = append(roots, i)
		}
	}
	return roots
}

func nodeTransform(n *gltf.Node) math3d.Mat4 {
	if m := math3d.Mat4(n.MatrixOrDefault()); m != math3d.Identity() {
		return m
	}
	t := n.TranslationOrDefault()
	s := n.ScaleOrDefault()
	return math3d.TRS(
		math3d.V3(t[0], t[1], t[2]),
		math3d.QuatXYZW(n.RotationOrDefault()),
		math3d.V3(s[0], s[1], s[2]),
	)
}

func addMesh(doc *gltf.Document, meshIdx int, world math3d.Mat4, scene *Scene) error {
	if meshIdx < 0 || meshIdx >= len(doc.Meshes) {
		return fmt.Errorf("mesh index %d out of range", meshIdx)
	}
	m := doc.Meshes[meshIdx]
	for i, prim := range m.Primitives {
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: read positions: %w", m.Name, i, err)
		}
		if len(positions) == 0 {
			continue
		}
		matIdx := -1
		if prim.Material != nil {
			matIdx = *prim.Material
		}
		mesh := NewMesh(m.Name, positions, matIdx).Transform(world)
		center, radius := mesh.BoundingSphere()
		scene.Surfaces = append(scene.Surfaces, NewSphere(center, radius, documentMaterial(doc, matIdx)))
	}
	return nil
}

// documentMaterial maps glTF metallic-roughness factors onto the Phong
// coefficients: rough surfaces are diffuse, smooth ones specular with a
// tighter highlight.
func documentMaterial(doc *gltf.Document, idx int) Material {
	if idx < 0 || idx >= len(doc.Materials) {
		return NewMaterial(pixel.White, gltfAmbient, 1, 0)
	}
	pbr := doc.Materials[idx].PBRMetallicRoughness
	if pbr == nil {
		return NewMaterial(pixel.White, gltfAmbient, 1, 0)
	}
	roughness := pbr.RoughnessFactorOrDefault()
	return NewMaterial(
		colorFromFactors(pbr.BaseColorFactorOrDefault()),
		gltfAmbient,
		roughness,
		1+99*(1-roughness),
	)
}

// colorFromFactors converts 0..1 RGBA factors to a color.
func colorFromFactors(f [4]float64) pixel.Color {
	var ch [4]uint8
	for i, x := range f {
		ch[i] = uint8(math.Round(math.Max(0, math.Min(1, x)) * 255))
	}
	return pixel.RGBA(ch[0], ch[1], ch[2], ch[3])
}

func rgb1(c [3]float64) [4]float64 {
	return [4]float64{c[0], c[1], c[2], 1}
}

// documentLights returns the document-level KHR_lights_punctual table.
func documentLights(doc *gltf.Document) lightspunctual.Lights {
	ext, ok := doc.Extensions[lightspunctual.ExtensionName]
	if !ok {
		return nil
	}
	switch v := ext.(type) {
	case lightspunctual.Lights:
		return v
	case *lightspunctual.Lights:
		return *v
	}
	return nil
}

// nodeLight resolves a node's light reference. Only point lights are
// supported.
func nodeLight(n *gltf.Node, lights lightspunctual.Lights) (*lightspunctual.Light, bool) {
	ext, ok := n.Extensions[lightspunctual.ExtensionName]
	if !ok {
		return nil, false
	}
	var idx int
	switch v := ext.(type) {
	case lightspunctual.LightIndex:
		idx = int(v)
	case *lightspunctual.LightIndex:
		idx = int(*v)
	default:
		return nil, false
	}
	if idx < 0 || idx >= len(lights) || lights[idx] == nil {
		return nil, false
	}
	l := lights[idx]
	if l.Type != lightspunctual.TypePoint {
		return nil, false
	}
	return l, true
}

// readVec3Accessor reads float VEC3 data from a glTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float components, got %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range result {
		off := i * stride
		if off+12 > len(data) {
			return nil, fmt.Errorf("accessor overruns buffer at element %d", i)
		}
		result[i] = math3d.V3(
			float64(readFloat32(data[off:])),
			float64(readFloat32(data[off+4:])),
			float64(readFloat32(data[off+8:])),
		)
	}
	return result, nil
}

// accessorBytes returns the accessor's bytes starting at its first element,
// and the element stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	if *accessor.BufferView >= len(doc.BufferViews) {
		return nil, 0, fmt.Errorf("buffer view %d out of range", *accessor.BufferView)
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	if bufferView.Buffer >= len(doc.Buffers) {
		return nil, 0, fmt.Errorf("buffer %d out of range", bufferView.Buffer)
	}
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	if start > len(buffer.Data) {
		return nil, 0, fmt.Errorf("accessor starts past end of buffer")
	}
	stride := bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	return buffer.Data[start:], stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
