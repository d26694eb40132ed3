package bake

import (
	"fmt"

	"github.com/forgekit/forge/errs"
	"github.com/forgekit/forge/model"
	"github.com/forgekit/forge/sourcecfg"
)

// Model bakes a model document into its canonical form per spec §4.7: the
// mesh reference and its ordered materials list resolve to BlobIDs via
// lookup, keyed by the slot names the resolver recorded ("mesh",
// "materials[i]").
func Model(doc *sourcecfg.ModelDoc, lookup BlobLookup) (*model.Model, error) {
	mesh, ok := lookup("mesh")
	if !ok {
		return nil, fmt.Errorf("%w: model has no resolved mesh reference", errs.ErrPipeline)
	}

	materials := make([]model.BlobID, len(doc.Materials))
	for i := range doc.Materials {
		slot := fmt.Sprintf("materials[%d]", i)
		blob, ok := lookup(slot)
		if !ok {
			return nil, fmt.Errorf("%w: model material %d has no resolved reference", errs.ErrPipeline, i)
		}
		materials[i] = blob
	}

	return &model.Model{Parts: []model.ModelPart{{Mesh: mesh, Materials: materials}}}, nil
}
